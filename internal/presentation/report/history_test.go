package report

import (
	"strings"
	"testing"
	"time"

	"github.com/aretw0/meihua/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryTable(t *testing.T) {
	r1, err := domain.Derive(domain.CastThree(1, 1, 1))
	require.NoError(t, err)
	r1.ID = "first"
	r1.Inputs = []int{1, 1, 1}
	r1.CastAt = time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)

	r2, err := domain.Derive(domain.CastThree(8, 8, 6))
	require.NoError(t, err)
	r2.ID = "second"
	r2.Inputs = []int{8, 8, 6}
	r2.CastAt = time.Date(2026, 1, 2, 5, 6, 0, 0, time.UTC)

	out := HistoryTable([]*domain.Reading{&r2, &r1}, time.UTC)

	for _, want := range []string{"主卦", "second", "2026-01-02 05:06", "雷地豫", "8 8 6", "first", "天泽履", "three_numbers"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
}

func TestHistoryTable_Empty(t *testing.T) {
	out := HistoryTable(nil, nil)
	assert.Contains(t, out, "ID")
}

