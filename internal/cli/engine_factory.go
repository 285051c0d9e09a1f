package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/meihua"
	"github.com/aretw0/meihua/internal/config"
	"github.com/aretw0/meihua/pkg/adapters/file"
	"github.com/aretw0/meihua/pkg/adapters/memory"
	"github.com/aretw0/meihua/pkg/adapters/redis"
	"github.com/aretw0/meihua/pkg/domain"
	"github.com/aretw0/meihua/pkg/ports"
)

// OpenJournal builds the journal selected by cfg. The returned close function
// is never nil. A "none" backend yields a nil journal.
func OpenJournal(ctx context.Context, cfg config.Config) (ports.Journal, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Journal.Backend {
	case config.JournalNone:
		return nil, noop, nil
	case config.JournalMemory:
		return memory.NewJournal(), noop, nil
	case config.JournalFile:
		return file.NewJournal(cfg.Journal.Dir), noop, nil
	case config.JournalRedis:
		var opts []redis.Option
		if cfg.Journal.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Journal.TTL))
		}
		j := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := j.Ping(ctx); err != nil {
			_ = j.Close()
			return nil, noop, fmt.Errorf("open redis journal at %s: %w", cfg.Redis.Addr, err)
		}
		return j, j.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown journal backend %q", cfg.Journal.Backend)
	}
}

// EngineOptions carries what the commands need to build an engine.
type EngineOptions struct {
	Config config.Config
	Logger *slog.Logger
	Debug  bool
	Hooks  domain.LifecycleHooks
}

// CreateEngine opens the configured journal and builds the engine on top of it.
// Callers must invoke the returned close function when done.
func CreateEngine(ctx context.Context, opts EngineOptions) (*meihua.Engine, func() error, error) {
	journal, closeJournal, err := OpenJournal(ctx, opts.Config)
	if err != nil {
		return nil, closeJournal, err
	}

	hooks := opts.Hooks
	if opts.Debug && opts.Logger != nil {
		hooks = hooks.Merge(DebugHooks(opts.Logger))
	}

	engineOpts := []meihua.Option{
		meihua.WithLogger(opts.Logger),
		meihua.WithLifecycleHooks(hooks),
	}
	if journal != nil {
		engineOpts = append(engineOpts, meihua.WithJournal(journal))
	}
	return meihua.New(engineOpts...), closeJournal, nil
}
