//go:build windows

package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) Enable(entry Entry) (string, error) {
	if err := entry.validate(); err != nil {
		return "", fmt.Errorf("enable autostart: %w", err)
	}

	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return "", fmt.Errorf("enable autostart: open run key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(entry.Name, commandLine(entry)); err != nil {
		return "", fmt.Errorf("enable autostart: set run value: %w", err)
	}
	return `HKCU\` + runKeyPath + `\` + entry.Name, nil
}

func (service *platformService) Disable(appName string) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("disable autostart: %w", ErrEmptyName)
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("disable autostart: open run key: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(appName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("disable autostart: delete run value: %w", err)
	}
	return nil
}

func (service *platformService) IsEnabled(appName string) (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer key.Close()

	if _, _, err := key.GetStringValue(appName); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func quoteWindowsArg(arg string) string {
	trimmed := strings.Trim(arg, `"`)
	if trimmed != "" && !strings.ContainsAny(trimmed, " \t") {
		return trimmed
	}
	return `"` + trimmed + `"`
}

func commandLine(entry Entry) string {
	parts := []string{`"` + strings.Trim(entry.ExecPath, `"`) + `"`}
	for _, arg := range entry.Args {
		parts = append(parts, quoteWindowsArg(arg))
	}
	return strings.Join(parts, " ")
}
