package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"eyecare/internal/notify"
	"eyecare/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		env     string
		want    slog.Level
	}{
		{name: "default", want: slog.LevelInfo},
		{name: "verbose", verbose: true, want: slog.LevelDebug},
		{name: "env overrides", env: "warn", want: slog.LevelWarn},
		{name: "env overrides verbose", verbose: true, env: "ERROR", want: slog.LevelError},
		{name: "invalid env ignored", verbose: true, env: "loud", want: slog.LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logLevel(tt.verbose, tt.env))
		})
	}
}

func TestCheckCreatesDefaultConfig(t *testing.T) {
	var console bytes.Buffer
	previous := selectBackend
	selectBackend = func(options notify.Options) notify.Backend {
		return notify.NewConsoleNotifier(&console, options)
	}
	t.Cleanup(func() { selectBackend = previous })

	configPath := filepath.Join(t.TempDir(), "eyecare", "config.toml")
	_, err := execute(t, "check", "--lang", "en", "--config", configPath)
	require.NoError(t, err)
	assert.FileExists(t, configPath)
	assert.Contains(t, console.String(), "[EyeCare] ")
}

func TestRootRejectsUnknownLanguage(t *testing.T) {
	_, err := execute(t, "check", "--lang", "de")
	require.ErrorContains(t, err, `unsupported language "de"`)
}

func TestCheckSendsConfiguredMessage(t *testing.T) {
	var console bytes.Buffer
	previous := selectBackend
	selectBackend = func(options notify.Options) notify.Backend {
		return notify.NewConsoleNotifier(&console, options)
	}
	t.Cleanup(func() { selectBackend = previous })

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
settings:
  message_mode: sequential
messages:
  en:
    default: Rest your eyes
    items: [Blink]
`), 0o644))
	out, err := execute(t, "check", "--lang", "en", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "[EyeCare] Rest your eyes\n", console.String())
	assert.Contains(t, out, "Sent via console")

	console.Reset()
	_, err = execute(t, "check", "--config", configPath, "-m", "Blink")
	require.NoError(t, err)
	assert.Equal(t, "[EyeCare] Blink\n", console.String())
}

type fakeAutostart struct {
	entries map[string]platform.Entry
}

func (fake *fakeAutostart) Enable(entry platform.Entry) (string, error) {
	fake.entries[entry.Name] = entry
	return "/autostart/" + entry.Name, nil
}

func (fake *fakeAutostart) Disable(appName string) error {
	delete(fake.entries, appName)
	return nil
}

func (fake *fakeAutostart) IsEnabled(appName string) (bool, error) {
	_, ok := fake.entries[appName]
	return ok, nil
}

func TestAutostartCommands(t *testing.T) {
	fake := &fakeAutostart{entries: map[string]platform.Entry{}}
	previous := autostartService
	autostartService = func() platform.Service { return fake }
	t.Cleanup(func() { autostartService = previous })

	out, err := execute(t, "autostart", "status")
	require.NoError(t, err)
	assert.Equal(t, "Autostart disabled\n", out)

	out, err = execute(t, "autostart", "enable", "--lang", "ru")
	require.NoError(t, err)
	assert.Equal(t, "Autostart enabled: /autostart/EyeCare\n", out)
	require.Contains(t, fake.entries, appName)
	assert.Equal(t, []string{"--lang", "ru"}, fake.entries[appName].Args)
	assert.True(t, filepath.IsAbs(fake.entries[appName].ExecPath))

	out, err = execute(t, "autostart", "status")
	require.NoError(t, err)
	assert.Equal(t, "Autostart enabled\n", out)

	out, err = execute(t, "autostart", "disable")
	require.NoError(t, err)
	assert.Equal(t, "Autostart disabled\n", out)
	assert.Empty(t, fake.entries)
}

func TestAutostartEntryIncludesConfig(t *testing.T) {
	entry, err := autostartEntry(&rootOptions{configPath: "settings.toml"})
	require.NoError(t, err)
	require.Len(t, entry.Args, 2)
	assert.Equal(t, "--config", entry.Args[0])
	assert.True(t, filepath.IsAbs(entry.Args[1]))
	assert.Equal(t, appName, entry.Name)
}
