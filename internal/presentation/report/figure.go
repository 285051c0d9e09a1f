package report

import (
	"strings"

	"github.com/aretw0/meihua/pkg/domain"
)

const (
	yangLine = "━━━━━━━"
	yinLine  = "━━━ ━━━"
)

// Figure draws a hexagram top line first, one line per row. The moving line,
// when in range, is marked with "○" if solid and "×" if broken.
func Figure(h domain.Hexagram, moving domain.MovingLine) string {
	var sb strings.Builder
	for line := domain.MovingLine(6); line >= 1; line-- {
		yang := h.Yang(line)
		if yang {
			sb.WriteString(yangLine)
		} else {
			sb.WriteString(yinLine)
		}
		if line == moving {
			if yang {
				sb.WriteString(" ○")
			} else {
				sb.WriteString(" ×")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SideBySide lays out the main and changed figures in two columns.
func SideBySide(main, changed domain.Hexagram, moving domain.MovingLine) string {
	left := strings.Split(strings.TrimSuffix(Figure(main, moving), "\n"), "\n")
	right := strings.Split(strings.TrimSuffix(Figure(changed, 0), "\n"), "\n")

	var sb strings.Builder
	for i := range left {
		row := left[i]
		// Pad to the width of a marked row so the right column stays aligned.
		if !strings.HasSuffix(row, "○") && !strings.HasSuffix(row, "×") {
			row += "  "
		}
		sb.WriteString(row)
		sb.WriteString("    ")
		sb.WriteString(right[i])
		sb.WriteByte('\n')
	}
	return sb.String()
}
