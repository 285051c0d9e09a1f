package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the session banner to w, coloured when w is a terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	title := out.String("  梅花易数 · 寻物快速查询").Bold().Foreground(p.Color("#f472b6"))
	sub := out.String(fmt.Sprintf("  ☰ ☱ ☲ ☳ ☴ ☵ ☶ ☷   v%s", version)).Foreground(p.Color("#a78bfa"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, sub)
	fmt.Fprintln(w)
}

// Highlight colours a single line, for prompts and error lines.
func Highlight(w io.Writer, s, hex string) string {
	out := termenv.NewOutput(w)
	return out.String(s).Foreground(out.ColorProfile().Color(hex)).String()
}
