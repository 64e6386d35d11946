//go:build !linux && !freebsd && !openbsd && !netbsd && !dragonfly && !darwin && !windows

package platform

import "path/filepath"

func (service *platformService) Enable(Entry) (string, error) {
	return "", ErrUnsupported
}

func (service *platformService) Disable(string) error {
	return ErrUnsupported
}

func (service *platformService) IsEnabled(string) (bool, error) {
	return false, ErrUnsupported
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}
