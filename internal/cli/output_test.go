package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/meihua/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func castReading(t *testing.T) *domain.Reading {
	t.Helper()
	eng, _ := newTestEngine(t)
	r, err := eng.CastThree(context.Background(), 3, 7, 5)
	require.NoError(t, err)
	return r
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":         FormatText,
		"text":     FormatText,
		"markdown": FormatMarkdown,
		"json":     FormatJSON,
		"yaml":     FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestWriter_WriteReading(t *testing.T) {
	r := castReading(t)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&Writer{Out: &buf, Format: FormatText, Figure: true}).WriteReading(r))
		assert.Contains(t, buf.String(), "主卦：火山旅")
		assert.Contains(t, buf.String(), "━━━")
	})

	t.Run("markdown raw", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&Writer{Out: &buf, Format: FormatMarkdown}).WriteReading(r))
		assert.True(t, strings.HasPrefix(buf.String(), "# 起卦结果"))
	})

	t.Run("markdown rendered", func(t *testing.T) {
		var buf bytes.Buffer
		w := &Writer{Out: &buf, Format: FormatMarkdown, Render: func(md string) (string, error) {
			return "RENDERED\n", nil
		}}
		require.NoError(t, w.WriteReading(r))
		assert.Equal(t, "RENDERED\n", buf.String())
	})

	t.Run("markdown render error", func(t *testing.T) {
		w := &Writer{Out: &bytes.Buffer{}, Format: FormatMarkdown, Render: func(string) (string, error) {
			return "", errors.New("boom")
		}}
		assert.ErrorContains(t, w.WriteReading(r), "render markdown")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&Writer{Out: &buf, Format: FormatJSON}).WriteReading(r))

		var got domain.Reading
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, r.ID, got.ID)
		assert.Equal(t, "天山遁", got.Changed.Name)
		assert.Equal(t, domain.South, got.Hint.Primary)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&Writer{Out: &buf, Format: FormatYAML}).WriteReading(r))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, r.ID, got["id"])
		assert.Contains(t, buf.String(), "name: 水雷屯")
	})
}

func TestWriter_WriteHistory(t *testing.T) {
	r := castReading(t)
	readings := []*domain.Reading{r}

	var table bytes.Buffer
	require.NoError(t, (&Writer{Out: &table, Format: FormatText}).WriteHistory(readings))
	assert.Contains(t, table.String(), r.ID)
	assert.Contains(t, table.String(), "火山旅")

	var js bytes.Buffer
	require.NoError(t, (&Writer{Out: &js, Format: FormatJSON}).WriteHistory(readings))
	var got []domain.Reading
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, r.ID, got[0].ID)
}

func TestNewWriter_NonTerminal(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, FormatMarkdown, false)
	assert.Nil(t, w.Render)
}
