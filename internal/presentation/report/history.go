package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/meihua/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

var historyHeaders = []string{"ID", "时间", "方式", "输入", "主卦", "变卦", "方位"}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	sepStyle    = lipgloss.NewStyle().Faint(true)
)

// HistoryTable lists readings one per row, in the order given. A nil loc means local time.
func HistoryTable(readings []*domain.Reading, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	rows := make([][]string, 0, len(readings))
	for _, r := range readings {
		rows = append(rows, []string{
			r.ID,
			r.CastAt.In(loc).Format("2006-01-02 15:04"),
			r.Casting.Method.Key(),
			joinInts(r.Inputs),
			r.Main.Name,
			r.Changed.Name,
			r.Hint.Primary.String(),
		})
	}

	// Column widths are display widths so CJK cells line up.
	widths := make([]int, len(historyHeaders))
	for i, h := range historyHeaders {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2 // padding
		total += widths[i]
	}

	var sb strings.Builder
	writeRow(&sb, historyHeaders, widths, headerStyle)
	sb.WriteString(sepStyle.Render(strings.Repeat("-", total)))
	sb.WriteByte('\n')
	for _, row := range rows {
		writeRow(&sb, row, widths, cellStyle)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func writeRow(sb *strings.Builder, cells []string, widths []int, style lipgloss.Style) {
	for i, cell := range cells {
		sb.WriteString(style.Width(widths[i]).Render(cell))
		if i < len(cells)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteByte('\n')
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " ")
}
