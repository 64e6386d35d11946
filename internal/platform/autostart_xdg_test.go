//go:build linux || freebsd || openbsd || netbsd || dragonfly

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTempService(t *testing.T) (*platformService, string) {
	t.Helper()
	configDir := t.TempDir()
	return &platformService{
		configDir: func() (string, error) { return configDir, nil },
		homeDir:   os.UserHomeDir,
	}, configDir
}

func TestDesktopEntryLifecycle(t *testing.T) {
	service, configDir := newTempService(t)

	enabled, err := service.IsEnabled("EyeCare")
	require.NoError(t, err)
	assert.False(t, enabled)

	path, err := service.Enable(Entry{
		Name:     "EyeCare",
		ExecPath: "/opt/Eye Care/eyecare",
		Args:     []string{"--lang", "ru"},
		Comment:  "Eye rest reminder",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "autostart", "eyecare.desktop"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "[Desktop Entry]\n")
	assert.Contains(t, content, "Name=EyeCare\n")
	assert.Contains(t, content, "Comment=Eye rest reminder\n")
	assert.Contains(t, content, `Exec="/opt/Eye Care/eyecare" --lang ru`+"\n")

	enabled, err = service.IsEnabled("EyeCare")
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, service.Disable("EyeCare"))
	require.NoError(t, service.Disable("EyeCare"))
	assert.NoFileExists(t, path)
}

func TestEnableRejectsEmptyEntry(t *testing.T) {
	service, _ := newTempService(t)
	_, err := service.Enable(Entry{Name: "EyeCare"})
	require.ErrorIs(t, err, ErrEmptyExecPath)
	require.ErrorIs(t, service.Disable(""), ErrEmptyName)
}

func TestDesktopExecArg(t *testing.T) {
	assert.Equal(t, "/usr/bin/eyecare", desktopExecArg("/usr/bin/eyecare"))
	assert.Equal(t, `"a b"`, desktopExecArg("a b"))
	assert.Equal(t, `"\$HOME"`, desktopExecArg("$HOME"))
	assert.Equal(t, `""`, desktopExecArg(""))
}
