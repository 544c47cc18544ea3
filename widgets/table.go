package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table lays out rows in columns sized to their widest cell. Selected
// marks one row (-1 for none); RowStyle may colour individual rows.
type Table struct {
	Headers  []string
	Rows     [][]string
	Selected int
	RowStyle func(row int) lipgloss.Style
	Empty    string
}

func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Headers) == 0 {
		return "No data"
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(paneText)
	lines := []string{header.Render(padRight("  "+joinCells(t.Headers, widths), width))}
	if len(t.Rows) == 0 && t.Empty != "" {
		return strings.Join(append(lines, t.Empty), "\n")
	}
	selected := lipgloss.NewStyle().Reverse(true)
	for i, row := range t.Rows {
		if len(lines) >= height {
			break
		}
		cells := joinCells(row, widths)
		line := padRight("  "+cells, width)
		if i == t.Selected {
			line = selected.Render(padRight("▶ "+cells, width))
		} else if t.RowStyle != nil {
			line = t.RowStyle(i).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func joinCells(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = padRight(cell, widths[i])
	}
	return strings.Join(parts, "  ")
}
