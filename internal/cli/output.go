package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/meihua/internal/presentation/report"
	"github.com/aretw0/meihua/internal/presentation/tui"
	"github.com/aretw0/meihua/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format selects how a reading is written.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatMarkdown, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, markdown, json or yaml)", s)
	}
}

// Writer renders readings to an output stream.
type Writer struct {
	Out    io.Writer
	Format Format
	Figure bool
	// Render turns markdown into terminal output. When nil, markdown is written raw.
	Render func(string) (string, error)
}

// NewWriter picks a glamour renderer for markdown when out is a terminal.
func NewWriter(out io.Writer, format Format, figure bool) *Writer {
	w := &Writer{Out: out, Format: format, Figure: figure}
	if format == FormatMarkdown && IsTerminal(out) {
		if render, err := tui.NewRenderer(0); err == nil {
			w.Render = render
		}
	}
	return w
}

// WriteReading writes one reading in the selected format.
func (w *Writer) WriteReading(r *domain.Reading) error {
	opts := report.Options{Figure: w.Figure}
	switch w.Format {
	case FormatJSON:
		enc := json.NewEncoder(w.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w.Out)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		md := report.Markdown(r, opts)
		if w.Render != nil {
			out, err := w.Render(md)
			if err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
			md = out
		}
		_, err := io.WriteString(w.Out, md)
		return err
	default:
		_, err := io.WriteString(w.Out, report.Text(r, opts))
		return err
	}
}

// WriteHistory writes a list of readings: a table for text and markdown,
// the raw list for json and yaml.
func (w *Writer) WriteHistory(readings []*domain.Reading) error {
	switch w.Format {
	case FormatJSON:
		enc := json.NewEncoder(w.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(readings)
	case FormatYAML:
		return yaml.NewEncoder(w.Out).Encode(readings)
	default:
		_, err := fmt.Fprintln(w.Out, report.HistoryTable(readings, nil))
		return err
	}
}
