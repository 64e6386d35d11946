package notify

import (
	"io"
	"runtime"

	"eyecare/internal/i18n"
)

// Probe describes the platform once at startup. The availability functions
// return a ready backend or false; they never fail.
type Probe struct {
	GOOS        string
	ModernToast func(Options) (Backend, bool)
	LegacyToast func(Options) (Backend, bool)
	Console     io.Writer
}

// SystemProbe describes the running platform.
func SystemProbe() Probe {
	return Probe{
		GOOS:        runtime.GOOS,
		ModernToast: newModernToast,
		LegacyToast: newLegacyToast,
	}
}

// Select picks the backend for the probed platform, falling back to console output.
func Select(probe Probe, options Options) Backend {
	logger := options.logger()
	catalog := options.Catalog
	logger.Debug(catalog.T("notifier_init", i18n.Data{"System": probe.GOOS}))

	switch probe.GOOS {
	case "darwin":
		logger.Info(catalog.T("using_macos"))
		return NewScriptNotifier(options)
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		logger.Info(catalog.T("using_linux"))
		return NewNotifySendNotifier(options)
	case "windows":
		if backend, ok := probeBackend(probe.ModernToast, options); ok {
			logger.Info(catalog.T("using_toast"))
			return backend
		}
		if backend, ok := probeBackend(probe.LegacyToast, options); ok {
			logger.Info(catalog.T("using_beeep"))
			return backend
		}
		logger.Warn(catalog.T("notifier_fallback"))
		return NewConsoleNotifier(probe.Console, options)
	default:
		logger.Warn(catalog.T("unknown_system", i18n.Data{"System": probe.GOOS}))
		return NewConsoleNotifier(probe.Console, options)
	}
}

func probeBackend(available func(Options) (Backend, bool), options Options) (Backend, bool) {
	if available == nil {
		return nil, false
	}
	backend, ok := available(options)
	if !ok || backend == nil {
		return nil, false
	}
	return backend, true
}
