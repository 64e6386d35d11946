package platform

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "eyecare", slug("EyeCare"))
	assert.Equal(t, "eyecare-reminder", slug("  EyeCare   Reminder "))
	assert.Equal(t, "eyecare", slug(""))
}

func TestEntryValidate(t *testing.T) {
	require.ErrorIs(t, Entry{ExecPath: "/bin/eyecare"}.validate(), ErrEmptyName)
	require.ErrorIs(t, Entry{Name: "EyeCare", ExecPath: " "}.validate(), ErrEmptyExecPath)
	require.NoError(t, Entry{Name: "EyeCare", ExecPath: "/bin/eyecare"}.validate())
}

func TestUserConfigDirFallback(t *testing.T) {
	home := t.TempDir()
	service := &platformService{
		configDir: func() (string, error) { return "", errors.New("no config dir") },
		homeDir:   func() (string, error) { return home, nil },
	}
	dir, err := service.userConfigDir()
	require.NoError(t, err)
	assert.Equal(t, fallbackConfigDir(home), dir)
	assert.True(t, filepath.IsAbs(dir))

	service.homeDir = func() (string, error) { return "", errors.New("no home") }
	_, err = service.userConfigDir()
	require.ErrorContains(t, err, "no config dir")
}
