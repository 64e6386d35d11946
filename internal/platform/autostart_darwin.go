//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func (service *platformService) Enable(entry Entry) (string, error) {
	if err := entry.validate(); err != nil {
		return "", fmt.Errorf("enable autostart: %w", err)
	}

	path, err := service.plistPath(entry.Name)
	if err != nil {
		return "", fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("enable autostart: create LaunchAgents dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(buildLaunchAgentPlist(launchAgentLabel(entry.Name), entry)), 0o644); err != nil {
		return "", fmt.Errorf("enable autostart: write plist: %w", err)
	}
	return path, nil
}

func (service *platformService) Disable(appName string) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("disable autostart: %w", ErrEmptyName)
	}

	path, err := service.plistPath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove plist: %w", err)
	}
	return nil
}

func (service *platformService) IsEnabled(appName string) (bool, error) {
	path, err := service.plistPath(appName)
	if err != nil {
		return false, err
	}
	return fileExists(path)
}

func (service *platformService) plistPath(appName string) (string, error) {
	homeDir, err := service.homeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(appName)+".plist"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentLabel(appName string) string {
	return "com.eyecare." + slug(appName)
}

func buildLaunchAgentPlist(label string, entry Entry) string {
	var args strings.Builder
	for _, arg := range append([]string{entry.ExecPath}, entry.Args...) {
		fmt.Fprintf(&args, "\t\t<string>%s</string>\n", xmlEscaper.Replace(arg))
	}

	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
%s	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>ProcessType</key>
	<string>Interactive</string>
</dict>
</plist>
`,
		xmlEscaper.Replace(label),
		args.String(),
	)
}
