package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/meihua/internal/runtime"
	"github.com/aretw0/meihua/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	var casts []*domain.CastEvent
	var readings []*domain.ReadingEvent

	hooks := domain.LifecycleHooks{
		OnCast: func(ctx context.Context, e *domain.CastEvent) {
			casts = append(casts, e)
		},
		OnReading: func(ctx context.Context, e *domain.ReadingEvent) {
			readings = append(readings, e)
		},
	}
	engine := fixedEngine(runtime.WithHooks(hooks))

	_, err := engine.Read(context.Background(), domain.CastThree(8, 8, 6), 8, 8, 6)
	require.NoError(t, err)

	require.Len(t, casts, 1)
	assert.Equal(t, domain.EventCast, casts[0].Type)
	assert.Equal(t, []int{8, 8, 6}, casts[0].Inputs)
	assert.Equal(t, domain.Kun, casts[0].Casting.Upper)

	require.Len(t, readings, 1)
	assert.Equal(t, domain.EventReading, readings[0].Type)
	assert.Equal(t, "坤为地", readings[0].Reading.Main.Name)
}

func TestEngine_HooksSkippedOnInvalidCasting(t *testing.T) {
	called := false
	hooks := domain.LifecycleHooks{
		OnCast: func(context.Context, *domain.CastEvent) { called = true },
	}
	engine := fixedEngine(runtime.WithHooks(hooks))

	_, err := engine.Read(context.Background(), domain.Casting{})
	require.Error(t, err)
	assert.False(t, called)
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnCast: func(context.Context, *domain.CastEvent) { order = append(order, "a") },
	}
	b := domain.LifecycleHooks{
		OnCast:    func(context.Context, *domain.CastEvent) { order = append(order, "b") },
		OnReading: func(context.Context, *domain.ReadingEvent) { order = append(order, "b-reading") },
	}

	engine := fixedEngine(runtime.WithHooks(a.Merge(b)))
	_, err := engine.Read(context.Background(), domain.CastThree(2, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "b-reading"}, order)
}
