// Package logic contains the pure brew controller state machine.
// This package has NO external dependencies (no GPIO, LCD, HTTP, or
// time.Sleep). Time is always injectable via time.Time parameters.
package logic

import "time"

// BrewState represents whether the brewer relay is actuated.
type BrewState string

const (
	StateIdle    BrewState = "IDLE"
	StateBrewing BrewState = "BREWING"
)

// RelayOn returns the relay level implied by the state.
// The relay level must always be this pure function of BrewState.
func (s BrewState) RelayOn() bool {
	return s == StateBrewing
}

// StatusText returns the second display line for the state.
func StatusText(s BrewState) string {
	if s == StateBrewing {
		return "Brewing"
	}
	return "Not brewing"
}

// EventType represents a brew state transition event.
type EventType string

const (
	EventBrewStart EventType = "BREW_START"
	EventBrewStop  EventType = "BREW_STOP"
)

// Event represents a state transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	State     BrewState
}

// Frame is one full display refresh: line 1 clock, line 2 status.
type Frame struct {
	Line1 string
	Line2 string
}

// RelayCommand is a relay level to drive. Issued once per transition
// edge, never once per cycle.
type RelayCommand struct {
	On bool
}

// Step describes the side effects the driver loop must perform for one
// cycle. Relay commands are ordered before frame writes.
type Step struct {
	// Relay is non-nil only on a transition edge.
	Relay *RelayCommand
	// Event is non-nil only on a transition edge.
	Event *Event
	// Frame is non-nil when the display content changed and must be
	// rewritten.
	Frame *Frame
}

// Counts tracks the number of transitions since startup.
type Counts struct {
	BrewStarts int
	BrewStops  int
}
