package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/meihua/internal/logging"
	"github.com/aretw0/meihua/pkg/domain"
	"github.com/aretw0/meihua/pkg/ports"
	"github.com/google/uuid"
)

// Engine turns castings into readings. It holds no per-reading state and is safe
// for concurrent use as long as the configured journal and hooks are.
type Engine struct {
	journal ports.Journal
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithJournal records every reading in j.
func WithJournal(j ports.Journal) EngineOption {
	return func(e *Engine) {
		e.journal = j
	}
}

// WithHooks registers lifecycle hooks.
func WithHooks(h domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = h
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp readings.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides how reading IDs are minted.
func WithIDGenerator(newID func() string) EngineOption {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}

// NewEngine creates a new engine. Without options readings are not journaled.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Read derives the full reading for a casting, stamps it, journals it and fires hooks.
// inputs are the raw numbers the casting came from and are carried for display only.
func (e *Engine) Read(ctx context.Context, c domain.Casting, inputs ...int) (*domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	now := e.now().UTC()
	if e.hooks.OnCast != nil {
		e.hooks.OnCast(ctx, &domain.CastEvent{
			EventBase: domain.EventBase{Timestamp: now, Type: domain.EventCast},
			Casting:   c,
			Inputs:    inputs,
		})
	}

	r, err := domain.Derive(c)
	if err != nil {
		return nil, err
	}
	r.ID = e.newID()
	r.CastAt = now
	r.Inputs = append([]int(nil), inputs...)

	e.logger.Debug("reading derived",
		"id", r.ID,
		"method", c.Method.Key(),
		"upper", int(c.Upper),
		"lower", int(c.Lower),
		"moving", int(c.Moving),
		"main", r.Main.Name,
		"changed", r.Changed.Name,
		"mutual", r.Mutual.Name,
		"relation", r.Hint.Relation.Key(),
	)

	if e.journal != nil {
		if err := e.journal.Save(ctx, &r); err != nil {
			e.logger.Error("journal save failed", "id", r.ID, "error", err)
			return nil, fmt.Errorf("failed to journal reading: %w", err)
		}
	}

	if e.hooks.OnReading != nil {
		e.hooks.OnReading(ctx, &domain.ReadingEvent{
			EventBase: domain.EventBase{Timestamp: now, Type: domain.EventReading},
			Reading:   &r,
		})
	}
	return &r, nil
}

// Lookup fetches a journaled reading.
func (e *Engine) Lookup(ctx context.Context, id string) (*domain.Reading, error) {
	if e.journal == nil {
		return nil, domain.ErrReadingNotFound
	}
	return e.journal.Load(ctx, id)
}

// History lists journaled readings, newest first.
func (e *Engine) History(ctx context.Context, limit int) ([]*domain.Reading, error) {
	if e.journal == nil {
		return []*domain.Reading{}, nil
	}
	return e.journal.List(ctx, limit)
}
