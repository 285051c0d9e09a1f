package meihua

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/meihua/internal/runtime"
	"github.com/aretw0/meihua/pkg/domain"
	"github.com/aretw0/meihua/pkg/ports"
)

// Engine is the high-level entry point for the library.
// It wraps the internal runtime and adds the casting procedures on top of it.
type Engine struct {
	runtime *runtime.Engine
	journal ports.Journal
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithJournal records every reading in j. Without it readings are not kept.
func WithJournal(j ports.Journal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the time source used to stamp readings.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator overrides how reading IDs are minted (default: random UUIDs).
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithClock(eng.now),
		runtime.WithIDGenerator(eng.newID),
	}
	if eng.journal != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithJournal(eng.journal))
	}
	eng.runtime = runtime.NewEngine(runtimeOpts...)
	return eng
}

// CastThree casts from three numbers and derives the full reading.
func (e *Engine) CastThree(ctx context.Context, n1, n2, n3 int) (*domain.Reading, error) {
	return e.runtime.Read(ctx, domain.CastThree(n1, n2, n3), n1, n2, n3)
}

// CastCalendar casts from the lunar year branch, month, day and hour branch.
func (e *Engine) CastCalendar(ctx context.Context, yearBranch domain.Branch, month, day int, hourBranch domain.Branch) (*domain.Reading, error) {
	c, err := domain.CastCalendar(yearBranch, month, day, hourBranch)
	if err != nil {
		return nil, err
	}
	return e.runtime.Read(ctx, c, int(yearBranch), month, day, int(hourBranch))
}

// Read derives the reading for an already-built casting.
func (e *Engine) Read(ctx context.Context, c domain.Casting, inputs ...int) (*domain.Reading, error) {
	return e.runtime.Read(ctx, c, inputs...)
}

// Reading fetches a journaled reading by ID.
func (e *Engine) Reading(ctx context.Context, id string) (*domain.Reading, error) {
	return e.runtime.Lookup(ctx, id)
}

// History lists journaled readings, newest first. limit <= 0 means all.
func (e *Engine) History(ctx context.Context, limit int) ([]*domain.Reading, error) {
	return e.runtime.History(ctx, limit)
}
