package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"slices"
	"sync"
	"syscall"

	"eyecare/internal/core/model"
	"eyecare/internal/core/scheduler"
	"eyecare/internal/i18n"
	"eyecare/internal/notify"
	"eyecare/internal/ui/tray"
)

// ErrTrayPanic is returned by Run when the tray loop panicked.
var ErrTrayPanic = errors.New("tray loop panicked")

// Tray is the UI surface driven by the controller.
type Tray interface {
	SetPaused(paused bool)
	SetStatus(status string)
	Refresh()
	Stop() error
}

// IntervalPersister stores a newly selected interval.
type IntervalPersister interface {
	PersistInterval(minutes int)
}

// ConfigWatcher reports configuration changes until ctx is cancelled.
type ConfigWatcher interface {
	Watch(ctx context.Context, onChange func(model.ReminderConfig)) error
}

// Scheduler is the reminder timer.
type Scheduler interface {
	Start(interval int, mode model.Mode, messages []string) error
	Stop()
	TogglePause() bool
	TriggerNow() error
	SetInterval(minutes int) int
	SetMessages(mode model.Mode, messages []string) error
	Interval() int
	IsIntervalSelected(minutes int) bool
	Subscribe(buffer int) <-chan scheduler.Event
}

// Options configures a Controller.
type Options struct {
	Logger    *slog.Logger
	Catalog   *i18n.Catalog
	Backend   notify.Backend
	Persister IntervalPersister
	Watcher   ConfigWatcher
	// RunOnUI schedules fn on the UI thread. Defaults to calling fn directly.
	RunOnUI func(fn func())
	// RunTray runs the blocking UI loop. When nil, Run blocks until shutdown.
	RunTray func()
	// Signals overrides the OS shutdown signal source.
	Signals <-chan os.Signal
}

// Controller wires the scheduler, tray and notification backend together and
// owns the process lifecycle.
type Controller struct {
	options   Options
	logger    *slog.Logger
	catalog   *i18n.Catalog
	scheduler Scheduler

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	config model.ReminderConfig
	tray   Tray
	closed bool
	wg     sync.WaitGroup

	shutdownOnce sync.Once
}

// New creates a controller for config. The tray is attached later with SetTray
// since its callbacks point back at the controller.
func New(config model.ReminderConfig, sched Scheduler, options Options) *Controller {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if options.RunOnUI == nil {
		options.RunOnUI = func(fn func()) { fn() }
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		options:   options,
		logger:    logger,
		catalog:   options.Catalog,
		scheduler: sched,
		config:    config,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetTray attaches the tray UI.
func (controller *Controller) SetTray(t Tray) {
	controller.mu.Lock()
	controller.tray = t
	controller.mu.Unlock()
}

// Done is closed once shutdown has started.
func (controller *Controller) Done() <-chan struct{} {
	return controller.ctx.Done()
}

// Run starts the scheduler and background loops, then blocks in the tray loop.
// Cleanup always runs before it returns.
func (controller *Controller) Run(ctx context.Context) (err error) {
	config := controller.currentConfig()
	events := controller.scheduler.Subscribe(16)
	if err := controller.scheduler.Start(config.IntervalMinutes, config.Mode, config.Messages); err != nil {
		controller.Shutdown("start failed")
		return fmt.Errorf("start scheduler: %w", err)
	}

	controller.spawn(func() { controller.pump(events) })
	if controller.options.Watcher != nil {
		controller.spawn(func() {
			if err := controller.options.Watcher.Watch(controller.ctx, controller.ApplyConfig); err != nil {
				controller.logger.Warn(controller.catalog.T("config_watch_error"), "err", err)
			}
		})
	}
	controller.spawn(controller.watchSignals)
	controller.spawn(func() {
		select {
		case <-ctx.Done():
			controller.Shutdown("context cancelled")
		case <-controller.ctx.Done():
		}
	})

	defer func() {
		if recovered := recover(); recovered != nil {
			controller.logger.Error(controller.catalog.T("critical_error"), "panic", recovered, "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrTrayPanic, recovered)
		}
		controller.logger.Info(controller.catalog.T("cleanup"))
		controller.Shutdown("exit")
		controller.wg.Wait()
		controller.logger.Info(controller.catalog.T("app_exited"))
	}()

	controller.logger.Info(controller.catalog.T("tray_starting"))
	if controller.options.RunTray != nil {
		controller.options.RunTray()
	} else {
		<-controller.ctx.Done()
	}
	return nil
}

// TogglePause pauses or resumes reminders and confirms the change with a notification.
func (controller *Controller) TogglePause() {
	paused := controller.scheduler.TogglePause()
	controller.withTray(func(t Tray) { t.SetPaused(paused) })
	if paused {
		controller.notify(controller.catalog.T("notify_paused"))
	} else {
		controller.notify(controller.catalog.T("notify_resumed"))
	}
}

// CheckNow sends the next reminder immediately.
func (controller *Controller) CheckNow() {
	controller.spawn(func() {
		if err := controller.scheduler.TriggerNow(); err != nil {
			controller.logger.Debug("manual check failed", "err", err)
		}
	})
}

// SelectInterval applies a new interval, persists it and confirms it with a notification.
func (controller *Controller) SelectInterval(minutes int) {
	applied := controller.scheduler.SetInterval(minutes)

	controller.mu.Lock()
	controller.config.IntervalMinutes = applied
	controller.mu.Unlock()

	if persister := controller.options.Persister; persister != nil {
		controller.spawn(func() { persister.PersistInterval(applied) })
	}
	controller.withTray(func(t Tray) { t.Refresh() })
	controller.notify(controller.catalog.T("notify_interval_set", i18n.Data{"Minutes": applied}))
}

// IsIntervalSelected reports whether minutes is the active interval.
func (controller *Controller) IsIntervalSelected(minutes int) bool {
	return controller.scheduler.IsIntervalSelected(minutes)
}

// Quit shuts the application down at the user's request.
func (controller *Controller) Quit() {
	controller.logger.Info(controller.catalog.T("quitting"))
	controller.Shutdown("user request")
}

// ApplyConfig pushes a reloaded configuration into the scheduler. Only changed
// values are applied, so an unchanged interval keeps its countdown.
func (controller *Controller) ApplyConfig(config model.ReminderConfig) {
	controller.mu.Lock()
	previous := controller.config
	controller.config = config
	controller.mu.Unlock()

	if config.IntervalMinutes != controller.scheduler.Interval() {
		controller.scheduler.SetInterval(config.IntervalMinutes)
		controller.withTray(func(t Tray) { t.Refresh() })
	}
	if config.Mode != previous.Mode || !slices.Equal(config.Messages, previous.Messages) {
		if err := controller.scheduler.SetMessages(config.Mode, config.Messages); err != nil {
			controller.logger.Warn(controller.catalog.T("config_reload_error"), "err", err)
		}
	}
}

// Shutdown stops the scheduler, cancels background work and stops the tray.
// Only the first call has an effect.
func (controller *Controller) Shutdown(reason string) {
	controller.shutdownOnce.Do(func() {
		controller.logger.Info(controller.catalog.T("shutdown_start"), "reason", reason)

		controller.scheduler.Stop()

		controller.mu.Lock()
		controller.closed = true
		t := controller.tray
		controller.mu.Unlock()
		controller.cancel()

		if t == nil {
			return
		}
		go func() {
			if err := t.Stop(); err != nil {
				controller.logger.Debug(controller.catalog.T("shutdown_tray_error"), "err", err)
				return
			}
			controller.logger.Debug(controller.catalog.T("shutdown_tray"))
		}()
	})
}

func (controller *Controller) pump(events <-chan scheduler.Event) {
	for event := range events {
		switch event.Type {
		case scheduler.EventProgress, scheduler.EventIntervalChange:
			status := controller.catalog.T("status_next", i18n.Data{"Remaining": tray.FormatRemaining(event.Remaining)})
			controller.withTray(func(t Tray) { t.SetStatus(status) })
		case scheduler.EventStateChange:
			paused := event.State == scheduler.StatePaused
			controller.withTray(func(t Tray) { t.SetPaused(paused) })
		case scheduler.EventNotifyError:
			controller.logger.Debug(controller.catalog.T("notify_failed"), "manual", event.Manual, "err", event.Err)
		}
	}
}

func (controller *Controller) watchSignals() {
	signals := controller.options.Signals
	if signals == nil {
		controller.logger.Debug(controller.catalog.T("signal_registration"))
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(ch)
		if runtime.GOOS == "windows" {
			controller.logger.Debug(controller.catalog.T("signal_unsupported", i18n.Data{"Signal": syscall.SIGTERM.String()}))
		}
		signals = ch
	}

	select {
	case sig, ok := <-signals:
		if !ok {
			return
		}
		controller.logger.Info(controller.catalog.T("signal_received", i18n.Data{"Signal": sig.String()}))
		controller.Shutdown(sig.String())
	case <-controller.ctx.Done():
	}
}

// notify sends text through the backend off the calling goroutine.
func (controller *Controller) notify(text string) {
	backend := controller.options.Backend
	if backend == nil {
		return
	}
	controller.spawn(func() {
		if err := backend.Notify(controller.ctx, text); err != nil {
			controller.logger.Error(controller.catalog.T("notify_failed"), "backend", backend.Name(), "err", err)
		}
	})
}

func (controller *Controller) withTray(fn func(Tray)) {
	controller.mu.Lock()
	t := controller.tray
	controller.mu.Unlock()
	if t == nil {
		return
	}
	controller.options.RunOnUI(func() { fn(t) })
}

func (controller *Controller) spawn(fn func()) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return
	}
	controller.wg.Add(1)
	go func() {
		defer controller.wg.Done()
		fn()
	}()
}

func (controller *Controller) currentConfig() model.ReminderConfig {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.config
}
