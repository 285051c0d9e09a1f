package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/meihua/internal/runtime"
	"github.com/aretw0/meihua/pkg/adapters/memory"
	"github.com/aretw0/meihua/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 14, 30, 0, 0, time.FixedZone("CST", 8*3600))

func fixedEngine(opts ...runtime.EngineOption) *runtime.Engine {
	base := []runtime.EngineOption{
		runtime.WithClock(func() time.Time { return fixedNow }),
		runtime.WithIDGenerator(func() string { return "reading-1" }),
	}
	return runtime.NewEngine(append(base, opts...)...)
}

func TestEngine_Read_ThreeNumbers(t *testing.T) {
	engine := fixedEngine()

	r, err := engine.Read(context.Background(), domain.CastThree(1, 1, 1), 1, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, "reading-1", r.ID)
	assert.True(t, r.CastAt.Equal(fixedNow))
	assert.Equal(t, time.UTC, r.CastAt.Location())
	assert.Equal(t, []int{1, 1, 1}, r.Inputs)
	assert.Equal(t, "乾为天", r.Main.Name)
	assert.Equal(t, "天泽履", r.Changed.Name)
	assert.Equal(t, "乾为天", r.Mutual.Name)
}

func TestEngine_Read_Calendar(t *testing.T) {
	engine := fixedEngine()
	c, err := domain.CastCalendar(6, 1, 1, 8)
	require.NoError(t, err)

	r, err := engine.Read(context.Background(), c, 6, 1, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, "坤为地", r.Main.Name)
	assert.Equal(t, domain.MovingLine(4), r.Casting.Moving)
	assert.Equal(t, "山地剥", r.Changed.Name)
	assert.Equal(t, domain.HeightMid, r.Hint.Height)
	assert.Equal(t, domain.LocusEnvironment, r.Hint.Locus)
}

func TestEngine_Read_InvalidCasting(t *testing.T) {
	engine := fixedEngine()
	_, err := engine.Read(context.Background(), domain.Casting{Upper: 9, Lower: 1, Moving: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEngine_Read_CanceledContext(t *testing.T) {
	engine := fixedEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Read(ctx, domain.CastThree(1, 2, 3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Journal(t *testing.T) {
	journal := memory.NewJournal()
	engine := fixedEngine(runtime.WithJournal(journal))
	ctx := context.Background()

	r, err := engine.Read(ctx, domain.CastThree(3, 4, 5), 3, 4, 5)
	require.NoError(t, err)

	stored, err := engine.Lookup(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Main, stored.Main)

	history, err := engine.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, r.ID, history[0].ID)
}

func TestEngine_NoJournal(t *testing.T) {
	engine := fixedEngine()
	ctx := context.Background()

	_, err := engine.Lookup(ctx, "anything")
	assert.ErrorIs(t, err, domain.ErrReadingNotFound)

	history, err := engine.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

type failingJournal struct {
	*memory.Journal
}

func (failingJournal) Save(context.Context, *domain.Reading) error {
	return errors.New("disk full")
}

func TestEngine_JournalFailure(t *testing.T) {
	engine := fixedEngine(runtime.WithJournal(failingJournal{memory.NewJournal()}))
	_, err := engine.Read(context.Background(), domain.CastThree(1, 2, 3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
