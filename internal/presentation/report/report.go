// Package report renders a Reading as the plain-text or markdown report shown by
// the CLI and returned by the API.
package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/meihua/pkg/domain"
)

// Options tweak the rendered report.
type Options struct {
	// Figure adds the line drawing of the main and changed hexagrams.
	Figure bool
}

// Text renders the report as plain text.
func Text(r *domain.Reading, opts Options) string {
	var sb strings.Builder
	c := r.Casting
	upper, lower := trigram(c.Upper), trigram(c.Lower)

	sb.WriteString("=== 起卦结果 ===\n")
	fmt.Fprintf(&sb, "上卦：%s（%s %s）\n", upper.Name, upper.Element, upper.Direction)
	fmt.Fprintf(&sb, "下卦：%s（%s %s）\n", lower.Name, lower.Element, lower.Direction)
	fmt.Fprintf(&sb, "动爻：%d爻\n", c.Moving)
	sb.WriteByte('\n')

	sb.WriteString("=== 卦名 ===\n")
	fmt.Fprintf(&sb, "主卦：%s\n", r.Main.Name)
	fmt.Fprintf(&sb, "变卦：%s\n", r.Changed.Name)
	fmt.Fprintf(&sb, "互卦：%s（上互%s 下互%s）\n", r.Mutual.Name, r.Mutual.Upper, r.Mutual.Lower)
	if opts.Figure {
		sb.WriteByte('\n')
		sb.WriteString(SideBySide(r.Main.Bits, r.Changed.Bits, c.Moving))
	}
	sb.WriteByte('\n')

	sb.WriteString("=== 寻物提示（可执行） ===\n")
	for _, line := range HintLines(r.Hint) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Markdown renders the report as markdown, suitable for a terminal renderer.
func Markdown(r *domain.Reading, opts Options) string {
	var sb strings.Builder
	c := r.Casting
	upper, lower := trigram(c.Upper), trigram(c.Lower)

	sb.WriteString("# 起卦结果\n\n")
	sb.WriteString("| | 卦 | 五行 | 方位 |\n|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| 上卦 | %s %s | %s | %s |\n", upper.Symbol, upper.Name, upper.Element, upper.Direction)
	fmt.Fprintf(&sb, "| 下卦 | %s %s | %s | %s |\n\n", lower.Symbol, lower.Name, lower.Element, lower.Direction)
	fmt.Fprintf(&sb, "**动爻**：%d爻（%s）\n\n", c.Moving, c.Method)

	sb.WriteString("# 卦名\n\n")
	fmt.Fprintf(&sb, "- **主卦**：%s\n", r.Main.Name)
	fmt.Fprintf(&sb, "- **变卦**：%s\n", r.Changed.Name)
	fmt.Fprintf(&sb, "- **互卦**：%s（上互%s 下互%s）\n\n", r.Mutual.Name, r.Mutual.Upper, r.Mutual.Lower)
	if opts.Figure {
		sb.WriteString("```\n")
		sb.WriteString(SideBySide(r.Main.Bits, r.Changed.Bits, c.Moving))
		sb.WriteString("```\n\n")
	}

	sb.WriteString("# 寻物提示\n\n")
	for _, line := range HintLines(r.Hint) {
		fmt.Fprintf(&sb, "- %s\n", line)
	}
	return sb.String()
}

// HintLines renders the search hint one instruction per line.
func HintLines(h domain.Hint) []string {
	lines := []string{
		fmt.Sprintf("体(你/主体)=下卦%s(%s %s)；用(物/环境)=上卦%s(%s %s)",
			h.Body.Name, h.Body.Element, h.Body.Direction,
			h.Use.Name, h.Use.Element, h.Use.Direction),
		fmt.Sprintf("体用五行：%s", h.Relation),
	}

	dirs := fmt.Sprintf("优先方位：%s", h.Primary)
	if h.Secondary != nil {
		dirs += fmt.Sprintf("；次选方位：%s", *h.Secondary)
	}
	lines = append(lines,
		dirs,
		fmt.Sprintf("高度层级（按动爻%d）：%s", h.Moving, h.Height),
		fmt.Sprintf("用卦落点关键词：%s", h.Use.Places),
	)
	if h.Secondary != nil {
		lines = append(lines, fmt.Sprintf("变卦用卦落点关键词：%s（若主方位无果，再按此方位扩展）", h.SecondaryPlaces))
	}
	return append(lines, h.Locus.String())
}

func trigram(id domain.TrigramID) domain.Trigram {
	t, err := domain.LookupTrigram(id)
	if err != nil {
		return domain.Trigram{Name: id.String()}
	}
	return t
}
