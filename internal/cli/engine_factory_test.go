package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/meihua/internal/config"
	"github.com/aretw0/meihua/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenJournal_Backends(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		cfg := config.Default()
		cfg.Journal.Backend = config.JournalNone
		j, closeFn, err := OpenJournal(ctx, cfg)
		require.NoError(t, err)
		assert.Nil(t, j)
		assert.NoError(t, closeFn())
	})

	t.Run("memory", func(t *testing.T) {
		j, closeFn, err := OpenJournal(ctx, config.Default())
		require.NoError(t, err)
		assert.NotNil(t, j)
		assert.NoError(t, closeFn())
	})

	t.Run("file", func(t *testing.T) {
		cfg := config.Default()
		cfg.Journal.Backend = config.JournalFile
		cfg.Journal.Dir = t.TempDir()
		j, closeFn, err := OpenJournal(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()

		list, err := j.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Default()
		cfg.Journal.Backend = config.JournalRedis
		cfg.Journal.TTL = time.Hour
		cfg.Redis.Addr = mr.Addr()

		j, closeFn, err := OpenJournal(ctx, cfg)
		require.NoError(t, err)
		assert.NotNil(t, j)
		assert.NoError(t, closeFn())
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cfg := config.Default()
		cfg.Journal.Backend = config.JournalRedis
		cfg.Redis.Addr = addr

		_, closeFn, err := OpenJournal(ctx, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open redis journal")
		assert.NotNil(t, closeFn)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := config.Default()
		cfg.Journal.Backend = "etcd"
		_, _, err := OpenJournal(ctx, cfg)
		assert.ErrorContains(t, err, "unknown journal backend")
	})
}

func TestCreateEngine(t *testing.T) {
	ctx := context.Background()
	eng, closeFn, err := CreateEngine(ctx, EngineOptions{
		Config: config.Default(),
		Logger: logging.NewNop(),
		Debug:  true,
	})
	require.NoError(t, err)
	defer closeFn()

	r, err := eng.CastThree(ctx, 3, 7, 5)
	require.NoError(t, err)
	assert.Equal(t, "火山旅", r.Main.Name)

	history, err := eng.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, r.ID, history[0].ID)
}

func TestCreateEngine_NoJournal(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Journal.Backend = config.JournalNone

	eng, closeFn, err := CreateEngine(ctx, EngineOptions{Config: cfg})
	require.NoError(t, err)
	defer closeFn()

	_, err = eng.CastThree(ctx, 1, 1, 1)
	require.NoError(t, err)

	history, err := eng.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}
