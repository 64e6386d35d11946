package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrEmptyName is returned when an entry has no application name.
	ErrEmptyName = errors.New("app name is empty")
	// ErrEmptyExecPath is returned when an entry has no executable path.
	ErrEmptyExecPath = errors.New("exec path is empty")
	// ErrUnsupported is returned on platforms without an autostart mechanism.
	ErrUnsupported = errors.New("autostart is not supported on this platform")
)

// Entry describes a program to launch at login.
type Entry struct {
	Name     string
	ExecPath string
	Args     []string
	Comment  string
}

func (entry Entry) validate() error {
	if strings.TrimSpace(entry.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(entry.ExecPath) == "" {
		return ErrEmptyExecPath
	}
	return nil
}

// Service registers the application to start with the user session.
type Service interface {
	// Enable registers entry and returns where it was written.
	Enable(entry Entry) (string, error)
	Disable(appName string) error
	IsEnabled(appName string) (bool, error)
}

type platformService struct {
	configDir func() (string, error)
	homeDir   func() (string, error)
}

// NewService returns the implementation for the current OS.
func NewService() Service {
	return &platformService{
		configDir: os.UserConfigDir,
		homeDir:   os.UserHomeDir,
	}
}

// userConfigDir returns the OS config directory, falling back to a path under home.
func (service *platformService) userConfigDir() (string, error) {
	configDir, err := service.configDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := service.homeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return fallbackConfigDir(homeDir), nil
}

// slug lowercases name and replaces spaces with dashes.
func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "eyecare"
	}
	return strings.Join(strings.Fields(name), "-")
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
