package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDerive_Qian(t *testing.T) {
	r, err := Derive(CastThree(1, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, "乾为天", r.Main.Name)
	assert.Equal(t, "天泽履", r.Changed.Name)
	assert.Equal(t, Dui, r.Changed.Lower)
	assert.Equal(t, "乾为天", r.Mutual.Name)
	assert.Equal(t, Hexagram(0b111111), r.Main.Bits)
	assert.Equal(t, Hexagram(0b111110), r.Changed.Bits)
}

func TestDerive_Kun(t *testing.T) {
	r, err := Derive(CastThree(8, 8, 6))
	require.NoError(t, err)

	assert.Equal(t, "坤为地", r.Main.Name)
	assert.Equal(t, "雷地豫", r.Changed.Name)
	assert.Equal(t, Zhen, r.Changed.Upper)
	assert.Equal(t, "坤为地", r.Mutual.Name)
	require.NotNil(t, r.Hint.Secondary)
	assert.Equal(t, East, *r.Hint.Secondary)
}

func TestDerive_RejectsInvalidCasting(t *testing.T) {
	_, err := Derive(Casting{Upper: 1, Lower: 1, Moving: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReading_EncodingRoundTrip(t *testing.T) {
	c, err := CastCalendar(6, 1, 1, 8)
	require.NoError(t, err)
	r, err := Derive(c)
	require.NoError(t, err)
	r.ID = "r-1"
	r.Inputs = []int{6, 1, 1, 8}

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"method":"calendar"`)
		assert.Contains(t, string(data), `"relation":"equal"`)

		var back Reading
		require.NoError(t, json.Unmarshal(data, &back))
		if diff := cmp.Diff(r, back); diff != "" {
			t.Errorf("json round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(r)
		require.NoError(t, err)
		assert.Contains(t, string(data), "primary_direction: southwest")

		var back Reading
		require.NoError(t, yaml.Unmarshal(data, &back))
		if diff := cmp.Diff(r, back); diff != "" {
			t.Errorf("yaml round trip mismatch (-want +got):\n%s", diff)
		}
	})
}
