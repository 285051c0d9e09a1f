package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCast    EventType = "cast"
	EventReading EventType = "reading"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// CastEvent is emitted once a casting has been validated.
type CastEvent struct {
	EventBase
	Casting Casting `json:"casting"`
	Inputs  []int   `json:"inputs"`
}

// ReadingEvent is emitted after a reading has been derived (and journaled, if configured).
type ReadingEvent struct {
	EventBase
	Reading *Reading `json:"reading"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the calling goroutine.
type LifecycleHooks struct {
	OnCast    func(context.Context, *CastEvent)
	OnReading func(context.Context, *ReadingEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCast: func(ctx context.Context, e *CastEvent) {
			if h.OnCast != nil {
				h.OnCast(ctx, e)
			}
			if other.OnCast != nil {
				other.OnCast(ctx, e)
			}
		},
		OnReading: func(ctx context.Context, e *ReadingEvent) {
			if h.OnReading != nil {
				h.OnReading(ctx, e)
			}
			if other.OnReading != nil {
				other.OnReading(ctx, e)
			}
		},
	}
}
