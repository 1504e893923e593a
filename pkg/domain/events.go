package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCommandStart EventType = "command_start"
	EventCommandEnd   EventType = "command_end"
	EventStateChange  EventType = "state_change"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// CommandEvent represents the start or end of an external command.
type CommandEvent struct {
	EventBase
	// Program is the executable name, without arguments.
	Program  string        `json:"program"`
	Command  string        `json:"command"`
	Duration time.Duration `json:"duration,omitempty"`
	ExitCode int           `json:"exit_code,omitempty"`
	IsError  bool          `json:"is_error,omitempty"`
}

// StateEvent represents a transition of the installation state.
type StateEvent struct {
	EventBase
	From State `json:"from"`
	To   State `json:"to"`
}

// LifecycleHooks defines callbacks for installer observability.
type LifecycleHooks struct {
	OnCommandStart func(context.Context, *CommandEvent)
	OnCommandEnd   func(context.Context, *CommandEvent)
	OnStateChange  func(context.Context, *StateEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCommandStart: chain(h.OnCommandStart, other.OnCommandStart),
		OnCommandEnd:   chain(h.OnCommandEnd, other.OnCommandEnd),
		OnStateChange:  chain(h.OnStateChange, other.OnStateChange),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
