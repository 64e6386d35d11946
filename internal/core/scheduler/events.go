package scheduler

import "time"

// State represents the scheduler lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateStopped State = "stopped"
)

// EventType defines the type of scheduler event.
type EventType string

const (
	EventStateChange    EventType = "state_change"
	EventProgress       EventType = "progress"
	EventIntervalChange EventType = "interval_change"
	EventNotification   EventType = "notification"
	EventNotifyError    EventType = "notify_error"
)

// Event represents a scheduler update for observers.
type Event struct {
	Type      EventType
	State     State
	Remaining time.Duration
	Interval  int
	Message   string
	Manual    bool
	Err       error
	At        time.Time
}
