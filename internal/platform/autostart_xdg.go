//go:build linux || freebsd || openbsd || netbsd || dragonfly

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (service *platformService) Enable(entry Entry) (string, error) {
	if err := entry.validate(); err != nil {
		return "", fmt.Errorf("enable autostart: %w", err)
	}

	path, err := service.desktopFilePath(entry.Name)
	if err != nil {
		return "", fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(buildDesktopEntry(entry)), 0o644); err != nil {
		return "", fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}
	return path, nil
}

func (service *platformService) Disable(appName string) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("disable autostart: %w", ErrEmptyName)
	}

	path, err := service.desktopFilePath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) IsEnabled(appName string) (bool, error) {
	path, err := service.desktopFilePath(appName)
	if err != nil {
		return false, err
	}
	return fileExists(path)
}

func (service *platformService) desktopFilePath(appName string) (string, error) {
	configDir, err := service.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", slug(appName)+".desktop"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

// desktopExecArg quotes an Exec argument for a .desktop file.
func desktopExecArg(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\"'\\$`") {
		return arg
	}
	escaper := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`)
	return `"` + escaper.Replace(arg) + `"`
}

func buildDesktopEntry(entry Entry) string {
	parts := []string{desktopExecArg(entry.ExecPath)}
	for _, arg := range entry.Args {
		parts = append(parts, desktopExecArg(arg))
	}

	var builder strings.Builder
	builder.WriteString("[Desktop Entry]\n")
	builder.WriteString("Type=Application\n")
	fmt.Fprintf(&builder, "Name=%s\n", entry.Name)
	if entry.Comment != "" {
		fmt.Fprintf(&builder, "Comment=%s\n", entry.Comment)
	}
	fmt.Fprintf(&builder, "Exec=%s\n", strings.Join(parts, " "))
	builder.WriteString("X-GNOME-Autostart-enabled=true\n")
	builder.WriteString("Terminal=false\n")
	return builder.String()
}
