package model

import "strings"

const (
	MinInterval     = 1
	MaxInterval     = 1440
	DefaultInterval = 20
)

// PresetIntervals are the interval choices offered in the tray menu, in minutes.
var PresetIntervals = []int{10, 15, 20, 30, 45, 60}

// Mode selects how the next reminder message is picked.
type Mode string

const (
	ModeRandom     Mode = "random"
	ModeSequential Mode = "sequential"
	ModeSingle     Mode = "single"
)

// Modes lists the recognized rotation modes.
var Modes = []Mode{ModeRandom, ModeSequential, ModeSingle}

// ParseMode normalizes a raw mode value. ok is false for unrecognized values.
func ParseMode(raw string) (Mode, bool) {
	mode := Mode(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Modes {
		if mode == known {
			return mode, true
		}
	}
	return mode, false
}

// ReminderConfig is the runtime configuration consumed by the scheduler.
type ReminderConfig struct {
	IntervalMinutes int
	Mode            Mode
	Messages        []string
	Language        string
}

// ClampInterval bounds minutes to [MinInterval, MaxInterval].
func ClampInterval(minutes int) int {
	if minutes < MinInterval {
		return MinInterval
	}
	if minutes > MaxInterval {
		return MaxInterval
	}
	return minutes
}
