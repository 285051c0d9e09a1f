package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/aretw0/meihua/internal/logging"
	"github.com/aretw0/meihua/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLogger(t *testing.T) {
	logger, err := CreateLogger("", false)
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = CreateLogger("warn", false)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))

	logger, err = CreateLogger("bogus", true)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	_, err = CreateLogger("bogus", false)
	assert.Error(t, err)
}

func TestDebugHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := DebugHooks(logging.NewJSONTo(&buf, slog.LevelDebug))

	c := domain.CastThree(1, 1, 1)
	r, err := domain.Derive(c)
	require.NoError(t, err)
	r.ID = "r-1"

	hooks.OnCast(context.Background(), &domain.CastEvent{Casting: c, Inputs: []int{1, 1, 1}})
	hooks.OnReading(context.Background(), &domain.ReadingEvent{Reading: &r})

	out := buf.String()
	assert.Contains(t, out, `"msg":"Cast"`)
	assert.Contains(t, out, `"method":"three_numbers"`)
	assert.Contains(t, out, `"id":"r-1"`)
	assert.Contains(t, out, `"main":"乾为天"`)
}

func TestIsInterrupted(t *testing.T) {
	assert.True(t, IsInterrupted(context.Canceled))
	assert.True(t, IsInterrupted(fmt.Errorf("read: %w", io.EOF)))
	assert.False(t, IsInterrupted(context.DeadlineExceeded))
	assert.False(t, IsInterrupted(nil))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestSignalContext_Cancel(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())
}
