package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_BitsBijection(t *testing.T) {
	seen := make(map[uint8]TrigramID)
	for _, tr := range Trigrams() {
		require.LessOrEqual(t, tr.Bits, uint8(0b111))
		_, dup := seen[tr.Bits]
		assert.False(t, dup, "bits %03b reused by %s", tr.Bits, tr.Name)
		seen[tr.Bits] = tr.ID

		back, err := TrigramFromBits(tr.Bits)
		require.NoError(t, err)
		assert.Equal(t, tr.ID, back)
	}
	assert.Len(t, seen, 8)
}

func TestCatalog_Exhaustive(t *testing.T) {
	directions := make(map[Direction]bool)
	for i, tr := range Trigrams() {
		assert.Equal(t, TrigramID(i+1), tr.ID)
		assert.NotEmpty(t, tr.Name)
		assert.NotEmpty(t, tr.Keywords)
		assert.NotEmpty(t, tr.Places)
		assert.NotEmpty(t, tr.Element.Key())
		assert.False(t, directions[tr.Direction], "direction %s reused", tr.Direction)
		directions[tr.Direction] = true
	}
	assert.Len(t, directions, 8)
}

func TestLookupTrigram(t *testing.T) {
	tr, err := LookupTrigram(Li)
	require.NoError(t, err)
	assert.Equal(t, "离", tr.Name)
	assert.Equal(t, Fire, tr.Element)
	assert.Equal(t, South, tr.Direction)

	for _, bad := range []TrigramID{0, 9, -1} {
		_, err := LookupTrigram(bad)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestTrigramFromBits_RejectsWide(t *testing.T) {
	_, err := TrigramFromBits(0b1000)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTrigramID_String(t *testing.T) {
	assert.Equal(t, "乾", Qian.String())
	assert.Equal(t, "坤", Kun.String())
	assert.Equal(t, "?", TrigramID(0).String())
}
