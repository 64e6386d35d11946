package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"eyecare/internal/core/model"
	"eyecare/internal/core/rotation"
	"eyecare/internal/i18n"
	"eyecare/internal/notify"
)

var (
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("scheduler already started")
	// ErrStopped is returned by operations after Stop.
	ErrStopped = errors.New("scheduler stopped")
	// ErrNoMessages is returned when the message set is empty.
	ErrNoMessages = rotation.ErrNoMessages
)

// Options contains runtime options for the Scheduler.
type Options struct {
	TickInterval time.Duration
	Logger       *slog.Logger
	Catalog      *i18n.Catalog
	Rand         *rand.Rand
}

// Scheduler counts down the reminder interval once per tick and dispatches a
// message to the notification backend when it expires.
type Scheduler struct {
	mu          sync.Mutex
	options     Options
	backend     notify.Backend
	logger      *slog.Logger
	catalog     *i18n.Catalog
	interval    int
	secondsLeft int
	paused      bool
	started     bool
	running     bool
	mode        model.Mode
	messages    []string
	cursor      int
	sent        int
	events      []chan Event
	stopCh      chan struct{}
	doneCh      chan struct{}
	ctx         context.Context
	cancel      context.CancelFunc
}

// New creates a Scheduler that dispatches through backend.
func New(backend notify.Backend, options Options) *Scheduler {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		options:  options,
		backend:  backend,
		logger:   logger,
		catalog:  options.Catalog,
		interval: model.DefaultInterval,
		mode:     model.ModeSequential,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (scheduler *Scheduler) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.started && !scheduler.running {
		close(ch)
		return ch
	}
	scheduler.events = append(scheduler.events, ch)
	return ch
}

// Start initializes the countdown and launches the ticking loop.
func (scheduler *Scheduler) Start(interval int, mode model.Mode, messages []string) error {
	if err := scheduler.prepare(interval, mode, messages); err != nil {
		return err
	}

	scheduler.logger.Info(scheduler.catalog.T("timer_started", i18n.Data{"Interval": scheduler.Interval()}))
	scheduler.emit(Event{Type: EventStateChange, State: StateRunning, At: time.Now()})

	go scheduler.run()
	scheduler.logger.Debug(scheduler.catalog.T("timer_thread_started"))
	return nil
}

// prepare moves the scheduler from idle to running without starting the loop.
func (scheduler *Scheduler) prepare(interval int, mode model.Mode, messages []string) error {
	if len(messages) == 0 {
		return ErrNoMessages
	}

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.started {
		if !scheduler.running {
			return ErrStopped
		}
		return ErrAlreadyStarted
	}
	scheduler.started = true
	scheduler.running = true
	scheduler.paused = false
	scheduler.interval = model.ClampInterval(interval)
	scheduler.secondsLeft = scheduler.interval * 60
	scheduler.mode = mode
	scheduler.messages = append([]string(nil), messages...)
	scheduler.cursor = 0
	return nil
}

// Stop terminates the ticking loop and closes observers. It is safe to call repeatedly.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	if !scheduler.running {
		if !scheduler.started {
			scheduler.started = true
			close(scheduler.doneCh)
		}
		scheduler.mu.Unlock()
		return
	}
	scheduler.running = false
	close(scheduler.stopCh)
	events := scheduler.events
	scheduler.events = nil
	scheduler.mu.Unlock()

	scheduler.cancel()
	for _, ch := range events {
		close(ch)
	}
}

// Done is closed once the ticking loop has exited.
func (scheduler *Scheduler) Done() <-chan struct{} {
	return scheduler.doneCh
}

// Pause freezes the countdown.
func (scheduler *Scheduler) Pause() {
	scheduler.updatePaused(func(bool) bool { return true })
}

// Resume continues the countdown from where it was frozen.
func (scheduler *Scheduler) Resume() {
	scheduler.updatePaused(func(bool) bool { return false })
}

// TogglePause flips the pause flag and returns the new value.
func (scheduler *Scheduler) TogglePause() bool {
	return scheduler.updatePaused(func(current bool) bool { return !current })
}

func (scheduler *Scheduler) updatePaused(next func(current bool) bool) bool {
	scheduler.mu.Lock()
	paused := next(scheduler.paused)
	if scheduler.paused == paused {
		scheduler.mu.Unlock()
		return paused
	}
	scheduler.paused = paused
	state := scheduler.stateLocked()
	remaining := scheduler.remainingLocked()
	scheduler.mu.Unlock()

	if paused {
		scheduler.logger.Info(scheduler.catalog.T("pause_enabled"))
	} else {
		scheduler.logger.Info(scheduler.catalog.T("pause_disabled"))
	}
	scheduler.emit(Event{Type: EventStateChange, State: state, Remaining: remaining, At: time.Now()})
	return paused
}

// SetInterval clamps minutes, stores it and restarts the countdown with the
// new full duration. It returns the stored value.
func (scheduler *Scheduler) SetInterval(minutes int) int {
	minutes = model.ClampInterval(minutes)

	scheduler.mu.Lock()
	scheduler.interval = minutes
	scheduler.secondsLeft = minutes * 60
	state := scheduler.stateLocked()
	remaining := scheduler.remainingLocked()
	scheduler.mu.Unlock()

	scheduler.logger.Info(scheduler.catalog.T("interval_changed", i18n.Data{"Interval": minutes}))
	scheduler.emit(Event{
		Type:      EventIntervalChange,
		State:     state,
		Interval:  minutes,
		Remaining: remaining,
		At:        time.Now(),
	})
	return minutes
}

// SetMessages replaces the rotation mode and message set and restarts the rotation.
func (scheduler *Scheduler) SetMessages(mode model.Mode, messages []string) error {
	if len(messages) == 0 {
		return ErrNoMessages
	}
	scheduler.mu.Lock()
	scheduler.mode = mode
	scheduler.messages = append([]string(nil), messages...)
	scheduler.cursor = 0
	scheduler.mu.Unlock()

	scheduler.logger.Info(scheduler.catalog.T("messages_changed", i18n.Data{"Mode": mode, "Count": len(messages)}))
	return nil
}

// TriggerNow dispatches the next message immediately without touching the countdown.
func (scheduler *Scheduler) TriggerNow() error {
	scheduler.mu.Lock()
	if scheduler.started && !scheduler.running {
		scheduler.mu.Unlock()
		return ErrStopped
	}
	text, _, err := scheduler.nextMessageLocked()
	scheduler.mu.Unlock()
	if err != nil {
		return err
	}

	scheduler.logger.Info(scheduler.catalog.T("manual_check"))
	return scheduler.dispatch(text, true)
}

// Tick advances the countdown by one second. The loop calls it once per
// TickInterval; it is exported so callers can drive the scheduler manually.
func (scheduler *Scheduler) Tick() {
	scheduler.mu.Lock()
	if !scheduler.running || scheduler.paused {
		scheduler.mu.Unlock()
		return
	}

	if scheduler.secondsLeft > 0 {
		scheduler.secondsLeft--
	}
	secondsLeft := scheduler.secondsLeft
	interval := scheduler.interval

	var (
		text string
		num  int
		err  error
		fire bool
	)
	if secondsLeft == 0 {
		fire = true
		text, num, err = scheduler.nextMessageLocked()
		// Use the latest interval, not the one captured above.
		scheduler.secondsLeft = scheduler.interval * 60
	}
	remaining := scheduler.remainingLocked()
	scheduler.mu.Unlock()

	if secondsLeft%60 == 0 {
		scheduler.logger.Debug(scheduler.catalog.T("timer_waiting", i18n.Data{"Minutes": interval}))
	}
	scheduler.emit(Event{Type: EventProgress, State: StateRunning, Remaining: remaining, Interval: interval, At: time.Now()})

	if !fire {
		return
	}
	if err != nil {
		scheduler.logger.Error(scheduler.catalog.T("notify_failed"), "err", err)
		return
	}
	scheduler.logger.Info(scheduler.catalog.T("auto_notification", i18n.Data{"Num": num, "Msg": notify.Preview(text)}))
	_ = scheduler.dispatch(text, false)
}

// State returns the current lifecycle state.
func (scheduler *Scheduler) State() State {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.stateLocked()
}

// Interval returns the current interval in minutes.
func (scheduler *Scheduler) Interval() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.interval
}

// IsIntervalSelected reports whether minutes is the current interval.
func (scheduler *Scheduler) IsIntervalSelected(minutes int) bool {
	return scheduler.Interval() == minutes
}

// SecondsLeft returns the seconds remaining in the current countdown.
func (scheduler *Scheduler) SecondsLeft() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.secondsLeft
}

// Paused reports whether the countdown is frozen.
func (scheduler *Scheduler) Paused() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.paused
}

// Sent returns the number of messages handed to the backend.
func (scheduler *Scheduler) Sent() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.sent
}

func (scheduler *Scheduler) run() {
	defer close(scheduler.doneCh)

	ticker := time.NewTicker(scheduler.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-scheduler.stopCh:
			return
		case <-ticker.C:
			scheduler.Tick()
		}
	}
}

// nextMessageLocked advances the rotation and returns the message with its sequence number.
func (scheduler *Scheduler) nextMessageLocked() (string, int, error) {
	text, cursor, err := rotation.Next(scheduler.mode, scheduler.messages, scheduler.cursor, scheduler.options.Rand)
	if err != nil {
		return "", 0, err
	}
	scheduler.cursor = cursor
	scheduler.sent++
	return text, scheduler.sent, nil
}

// dispatch sends text to the backend. It must be called without holding mu.
func (scheduler *Scheduler) dispatch(text string, manual bool) error {
	if scheduler.backend == nil {
		return nil
	}
	err := scheduler.backend.Notify(scheduler.ctx, text)
	if err != nil {
		scheduler.logger.Error(scheduler.catalog.T("notify_failed"), "backend", scheduler.backend.Name(), "err", err)
		scheduler.emit(Event{Type: EventNotifyError, State: scheduler.State(), Message: text, Manual: manual, Err: err, At: time.Now()})
		return err
	}
	scheduler.emit(Event{Type: EventNotification, State: scheduler.State(), Message: text, Manual: manual, At: time.Now()})
	return nil
}

func (scheduler *Scheduler) stateLocked() State {
	switch {
	case !scheduler.started:
		return StateIdle
	case !scheduler.running:
		return StateStopped
	case scheduler.paused:
		return StatePaused
	default:
		return StateRunning
	}
}

func (scheduler *Scheduler) remainingLocked() time.Duration {
	return time.Duration(scheduler.secondsLeft) * time.Second
}

func (scheduler *Scheduler) emit(event Event) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.emitLocked(event)
}

func (scheduler *Scheduler) emitLocked(event Event) {
	for _, ch := range scheduler.events {
		select {
		case ch <- event:
		default:
		}
	}
}
