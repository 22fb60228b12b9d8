package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type chartRow struct {
	label string
	value int
	color lipgloss.TerminalColor
}

// renderBarChart draws horizontal bars scaled to the widest row. Zero-value
// rows still render their label and count so the breakdown stays complete.
func renderBarChart(rows []chartRow, width int) string {
	labelW := 0
	max := 0
	for _, r := range rows {
		if w := lipgloss.Width(r.label); w > labelW {
			labelW = w
		}
		if r.value > max {
			max = r.value
		}
	}

	barSpace := width - labelW - 8
	if barSpace < 5 {
		barSpace = 5
	}

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		n := 0
		if max > 0 {
			n = r.value * barSpace / max
		}
		if r.value > 0 && n == 0 {
			n = 1
		}
		bar := lipgloss.NewStyle().Foreground(r.color).Render(strings.Repeat("█", n))
		label := lipgloss.NewStyle().Width(labelW).Render(r.label)
		b.WriteString(fmt.Sprintf("%s  %s %d", label, bar, r.value))
	}
	return b.String()
}
