package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementRelation_Equal(t *testing.T) {
	for _, e := range Elements {
		assert.Equal(t, RelationEqual, ElementRelation(e, e), "element %s", e)
	}
}

func TestElementRelation_Sweep(t *testing.T) {
	counts := make(map[Relation]int)
	for _, body := range Elements {
		for _, use := range Elements {
			counts[ElementRelation(body, use)]++
		}
	}
	assert.Equal(t, 0, counts[RelationUndetermined], "fallback must never be reached")
	for _, r := range []Relation{
		RelationEqual,
		RelationBodyGeneratesUse,
		RelationUseGeneratesBody,
		RelationBodyOvercomesUse,
		RelationUseOvercomesBody,
	} {
		assert.Equal(t, 5, counts[r], "relation %s", r.Key())
	}
	assert.NoError(t, CheckRelationTables())
}

func TestElementRelation_Directional(t *testing.T) {
	assert.Equal(t, RelationBodyGeneratesUse, ElementRelation(Wood, Fire))
	assert.Equal(t, RelationUseGeneratesBody, ElementRelation(Fire, Wood))
	assert.Equal(t, RelationBodyOvercomesUse, ElementRelation(Metal, Wood))
	assert.Equal(t, RelationUseOvercomesBody, ElementRelation(Wood, Metal))
	assert.Equal(t, RelationBodyGeneratesUse, ElementRelation(Water, Wood))
	assert.Equal(t, RelationUseOvercomesBody, ElementRelation(Water, Earth))
}

func TestElementRelation_BrokenTable(t *testing.T) {
	saved := overcomes[Metal]
	delete(overcomes, Metal)
	defer func() { overcomes[Metal] = saved }()

	assert.Equal(t, RelationUndetermined, ElementRelation(Metal, Wood))
	assert.ErrorIs(t, CheckRelationTables(), ErrUnresolvedRelation)
}

func TestRelation_Favorable(t *testing.T) {
	assert.True(t, RelationUseGeneratesBody.Favorable())
	assert.True(t, RelationBodyOvercomesUse.Favorable())
	assert.False(t, RelationUseOvercomesBody.Favorable())
	assert.False(t, RelationEqual.Favorable())
}

func TestElement_Text(t *testing.T) {
	data, err := json.Marshal(Wood)
	require.NoError(t, err)
	assert.Equal(t, `"wood"`, string(data))

	var e Element
	require.NoError(t, json.Unmarshal([]byte(`"earth"`), &e))
	assert.Equal(t, Earth, e)
	assert.Equal(t, "土", e.String())

	assert.ErrorIs(t, json.Unmarshal([]byte(`"aether"`), &e), ErrInvalidInput)
	_, err = Element(0).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseElement(t *testing.T) {
	for _, e := range Elements {
		got, err := ParseElement(e.Key())
		require.NoError(t, err)
		assert.Equal(t, e, got)

		got, err = ParseElement(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	got, err := ParseElement(" Fire ")
	require.NoError(t, err)
	assert.Equal(t, Fire, got)

	_, err = ParseElement("aether")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
