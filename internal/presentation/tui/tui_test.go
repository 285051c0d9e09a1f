package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")

	// A bytes.Buffer is not a terminal, so termenv emits plain text.
	assert.Contains(t, buf.String(), "梅花易数")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestHighlight_PlainOnNonTTY(t *testing.T) {
	assert.Equal(t, "oops", Highlight(&bytes.Buffer{}, "oops", "#ff0000"))
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(60)
	require.NoError(t, err)

	out, err := render("# 卦名\n\n- **主卦**：乾为天\n")
	require.NoError(t, err)
	assert.Contains(t, out, "乾为天")
}
