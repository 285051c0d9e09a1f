package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/meihua/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunJournalContract runs a suite of tests to verify that a Journal implementation
// adheres to the defined interface contract. The journal must start empty.
func RunJournalContract(t *testing.T, journal Journal) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405.000000")
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	newReading := func(id string, n int, at time.Time) *domain.Reading {
		r, err := domain.Derive(domain.CastThree(n, n+1, n+2))
		require.NoError(t, err)
		r.ID = id
		r.CastAt = at
		r.Inputs = []int{n, n + 1, n + 2}
		return &r
	}

	t.Run("Save and Load", func(t *testing.T) {
		id := prefix + "-save"
		want := newReading(id, 3, base)

		require.NoError(t, journal.Save(ctx, want), "Save should not return error")

		got, err := journal.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Casting, got.Casting)
		assert.Equal(t, want.Main, got.Main)
		assert.Equal(t, want.Changed, got.Changed)
		assert.Equal(t, want.Mutual, got.Mutual)
		assert.Equal(t, want.Hint, got.Hint)
		assert.Equal(t, want.Inputs, got.Inputs)
		assert.True(t, want.CastAt.Equal(got.CastAt))

		_ = journal.Delete(ctx, id)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		id := prefix + "-copy"
		require.NoError(t, journal.Save(ctx, newReading(id, 1, base)))

		first, err := journal.Load(ctx, id)
		require.NoError(t, err)
		first.Main.Name = "mutated"
		first.Inputs[0] = 99

		second, err := journal.Load(ctx, id)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", second.Main.Name)
		assert.Equal(t, 1, second.Inputs[0])

		_ = journal.Delete(ctx, id)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := journal.Load(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrReadingNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id := prefix + "-delete"
		require.NoError(t, journal.Save(ctx, newReading(id, 2, base)))

		require.NoError(t, journal.Delete(ctx, id), "Delete should not return error")

		_, err := journal.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrReadingNotFound, "Load after Delete should return ErrReadingNotFound")

		assert.NoError(t, journal.Delete(ctx, id), "second Delete should be a no-op")
	})

	t.Run("List newest first", func(t *testing.T) {
		ids := make([]string, 3)
		for i := range ids {
			ids[i] = fmt.Sprintf("%s-list-%d", prefix, i)
			require.NoError(t, journal.Save(ctx, newReading(ids[i], i+1, base.Add(time.Duration(i)*time.Minute))))
		}
		defer func() {
			for _, id := range ids {
				_ = journal.Delete(ctx, id)
			}
		}()

		all, err := journal.List(ctx, 0)
		require.NoError(t, err)
		got := make([]string, 0, len(all))
		for _, r := range all {
			got = append(got, r.ID)
		}
		assert.Equal(t, []string{ids[2], ids[1], ids[0]}, got)

		limited, err := journal.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, limited, 2)
		assert.Equal(t, ids[2], limited[0].ID)
		assert.Equal(t, ids[1], limited[1].ID)
	})
}
