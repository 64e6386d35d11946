package tray

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"eyecare/internal/core/model"
	"eyecare/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// ErrStopped is returned by Stop when the tray was already stopped.
var ErrStopped = errors.New("tray already stopped")

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnTogglePause    func()
	OnCheckNow       func()
	OnSelectInterval func(minutes int)
	OnQuit           func()
	// IsSelected reports whether a preset is the active interval.
	IsSelected func(minutes int) bool
}

// Options configures a Manager.
type Options struct {
	Catalog *i18n.Catalog
	// Presets defaults to model.PresetIntervals.
	Presets []int
	// Icon returns the tray icon for the given pause state.
	Icon func(paused bool) fyne.Resource
	// Quit ends the UI loop.
	Quit func()
}

// Manager handles system tray state. Its methods must run on the UI thread.
type Manager struct {
	app       desktop.App
	callbacks Callbacks
	options   Options

	mu      sync.Mutex
	paused  bool
	status  string
	stopped bool

	menu         *fyne.Menu
	statusItem   *fyne.MenuItem
	pauseItem    *fyne.MenuItem
	checkItem    *fyne.MenuItem
	intervalItem *fyne.MenuItem
	exitItem     *fyne.MenuItem
	presetItems  map[int]*fyne.MenuItem
}

// New creates a tray manager with the provided callbacks. app may be nil, in
// which case the menu is built but never installed.
func New(app desktop.App, callbacks Callbacks, options Options) *Manager {
	if len(options.Presets) == 0 {
		options.Presets = model.PresetIntervals
	}
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		options:     options,
		presetItems: make(map[int]*fyne.MenuItem, len(options.Presets)),
	}
	catalog := options.Catalog
	manager.status = catalog.T("status_starting")

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	manager.checkItem = fyne.NewMenuItem("", func() {
		if manager.callbacks.OnCheckNow != nil {
			manager.callbacks.OnCheckNow()
		}
	})

	presets := make([]*fyne.MenuItem, 0, len(options.Presets))
	for _, minutes := range options.Presets {
		item := fyne.NewMenuItem(catalog.T("interval_preset", i18n.Data{"Minutes": minutes}), func() {
			if manager.callbacks.OnSelectInterval != nil {
				manager.callbacks.OnSelectInterval(minutes)
			}
		})
		manager.presetItems[minutes] = item
		presets = append(presets, item)
	}
	manager.intervalItem = fyne.NewMenuItem("", nil)
	manager.intervalItem.ChildMenu = fyne.NewMenu("", presets...)

	manager.exitItem = fyne.NewMenuItem("", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	manager.exitItem.IsQuit = true

	manager.menu = fyne.NewMenu(catalog.T("tray_title"),
		manager.statusItem,
		manager.pauseItem,
		manager.checkItem,
		manager.intervalItem,
		fyne.NewMenuItemSeparator(),
		manager.exitItem,
	)
	manager.Refresh()
	return manager
}

// Menu returns the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.mu.Lock()
	manager.status = status
	manager.mu.Unlock()
	manager.Refresh()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.mu.Lock()
	changed := manager.paused != paused
	manager.paused = paused
	manager.mu.Unlock()
	manager.Refresh()
	if changed {
		manager.applyIcon(paused)
	}
}

// Refresh recomputes every label and interval checkmark and reinstalls the menu.
func (manager *Manager) Refresh() {
	catalog := manager.options.Catalog

	manager.mu.Lock()
	paused := manager.paused
	status := manager.status
	stopped := manager.stopped
	manager.mu.Unlock()

	if paused {
		status = catalog.T("status_paused", i18n.Data{"Status": status})
		manager.pauseItem.Label = catalog.T("menu_resume")
	} else {
		manager.pauseItem.Label = catalog.T("menu_pause")
	}
	manager.statusItem.Label = catalog.T("status_line", i18n.Data{"Status": status})
	manager.checkItem.Label = catalog.T("menu_check_now")
	manager.intervalItem.Label = catalog.T("menu_interval")
	manager.exitItem.Label = catalog.T("menu_exit")

	for minutes, item := range manager.presetItems {
		item.Checked = manager.callbacks.IsSelected != nil && manager.callbacks.IsSelected(minutes)
	}

	if manager.app != nil && !stopped {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

// Install sets the initial icon and menu on the desktop app.
func (manager *Manager) Install() {
	manager.mu.Lock()
	paused := manager.paused
	manager.mu.Unlock()
	manager.applyIcon(paused)
	manager.Refresh()
}

// Stop ends the UI loop. Only the first call has an effect.
func (manager *Manager) Stop() error {
	manager.mu.Lock()
	if manager.stopped {
		manager.mu.Unlock()
		return ErrStopped
	}
	manager.stopped = true
	manager.mu.Unlock()

	if manager.options.Quit != nil {
		manager.options.Quit()
	}
	return nil
}

func (manager *Manager) applyIcon(paused bool) {
	if manager.app == nil || manager.options.Icon == nil {
		return
	}
	manager.app.SetSystemTrayIcon(manager.options.Icon(paused))
}

// FormatRemaining renders a countdown as MM:SS, or HH:MM:SS for an hour or more.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining.Round(time.Second) / time.Second)
	hours, minutes, seconds := total/3600, (total%3600)/60, total%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
