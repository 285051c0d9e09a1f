package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTrigramIDs() []TrigramID {
	return []TrigramID{Qian, Dui, Li, Zhen, Xun, Kan, Gen, Kun}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, u := range allTrigramIDs() {
		for _, l := range allTrigramIDs() {
			h, err := Encode(u, l)
			require.NoError(t, err)
			require.True(t, h.Valid())

			gotU, gotL, err := h.Decode()
			require.NoError(t, err)
			assert.Equal(t, u, gotU)
			assert.Equal(t, l, gotL)
		}
	}
}

func TestEncode_Layout(t *testing.T) {
	h, err := Encode(Kun, Qian)
	require.NoError(t, err)
	assert.Equal(t, Hexagram(0b000111), h)

	h, err = Encode(Zhen, Gen)
	require.NoError(t, err)
	assert.Equal(t, Hexagram(0b100001), h)
}

func TestEncode_RejectsInvalidIDs(t *testing.T) {
	_, err := Encode(0, Qian)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Encode(Qian, 9)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecode_RejectsWideValues(t *testing.T) {
	_, _, err := Hexagram(0b1000000).Decode()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFlip_Involution(t *testing.T) {
	for v := Hexagram(0); v <= hexagramMask; v++ {
		for line := MovingLine(1); line <= 6; line++ {
			once, err := v.Flip(line)
			require.NoError(t, err)
			assert.NotEqual(t, v, once)
			twice, err := once.Flip(line)
			require.NoError(t, err)
			assert.Equal(t, v, twice)
		}
	}
}

func TestFlip_RejectsInvalidLine(t *testing.T) {
	_, err := Hexagram(0).Flip(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Hexagram(0).Flip(7)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestYang(t *testing.T) {
	h, _ := Encode(Kan, Li) // 010 101
	want := []bool{true, false, true, false, true, false}
	for i, w := range want {
		assert.Equal(t, w, h.Yang(MovingLine(i+1)), "line %d", i+1)
	}
	assert.False(t, h.Yang(0))
}

func TestHexagramNames_Bijection(t *testing.T) {
	seen := make(map[string]bool)
	for _, u := range allTrigramIDs() {
		for _, l := range allTrigramIDs() {
			name, err := HexagramName(u, l)
			require.NoError(t, err)
			require.NotEmpty(t, name)
			assert.False(t, seen[name], "duplicate name %s", name)
			seen[name] = true
		}
	}
	assert.Len(t, seen, 64)
}

func TestHexagramName_Known(t *testing.T) {
	tests := []struct {
		upper, lower TrigramID
		want         string
	}{
		{Qian, Qian, "乾为天"},
		{Kun, Kun, "坤为地"},
		{Qian, Dui, "天泽履"},
		{Gen, Kun, "山地剥"},
		{Zhen, Kun, "雷地豫"},
		{Kan, Li, "水火既济"},
		{Li, Kan, "火水未济"},
		{Kun, Qian, "地天泰"},
	}
	for _, tt := range tests {
		got, err := HexagramName(tt.upper, tt.lower)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := HexagramName(9, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChangedHexagram(t *testing.T) {
	u, l, err := ChangedHexagram(Qian, Qian, 1)
	require.NoError(t, err)
	assert.Equal(t, Qian, u)
	assert.Equal(t, Dui, l)

	// Line 6 is the top bit of the upper trigram: 坤 000 becomes 100, which is 震.
	u, l, err = ChangedHexagram(Kun, Kun, 6)
	require.NoError(t, err)
	assert.Equal(t, Zhen, u)
	assert.Equal(t, Kun, l)

	_, _, err = ChangedHexagram(Kun, Kun, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMutualHexagram(t *testing.T) {
	t.Run("pure hexagrams are their own mutual", func(t *testing.T) {
		u, l, name, err := MutualHexagram(Qian, Qian)
		require.NoError(t, err)
		assert.Equal(t, Qian, u)
		assert.Equal(t, Qian, l)
		assert.Equal(t, "乾为天", name)

		u, l, name, err = MutualHexagram(Kun, Kun)
		require.NoError(t, err)
		assert.Equal(t, Kun, u)
		assert.Equal(t, Kun, l)
		assert.Equal(t, "坤为地", name)
	})

	t.Run("既济 yields 未济", func(t *testing.T) {
		// 水火既济 lines bottom-up 1 0 1 0 1 0: lines 2-3-4 = 0 1 0 (坎), lines 3-4-5 = 1 0 1 (离).
		u, l, name, err := MutualHexagram(Kan, Li)
		require.NoError(t, err)
		assert.Equal(t, Li, u)
		assert.Equal(t, Kan, l)
		assert.Equal(t, "火水未济", name)
	})

	t.Run("windows match line numbering", func(t *testing.T) {
		for v := Hexagram(0); v <= hexagramMask; v++ {
			m := v.Mutual()
			for i, line := range []MovingLine{2, 3, 4} {
				assert.Equal(t, v.Yang(line), m.Yang(MovingLine(i+1)))
			}
			for i, line := range []MovingLine{3, 4, 5} {
				assert.Equal(t, v.Yang(line), m.Yang(MovingLine(i+4)))
			}
		}
	})

	_, _, _, err := MutualHexagram(0, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
