package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// List renders items with a cursor marker, scrolling so the cursor stays
// visible.
type List struct {
	Title  string
	Items  []string
	Cursor int
	Empty  string
}

func (l List) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := make([]string, 0, height)
	if l.Title != "" {
		rows = append(rows, lipgloss.NewStyle().Bold(true).Render(l.Title))
	}
	room := height - len(rows)
	if room <= 0 {
		return strings.Join(rows, "\n")
	}
	if len(l.Items) == 0 {
		empty := l.Empty
		if empty == "" {
			empty = "(none)"
		}
		return strings.Join(append(rows, empty), "\n")
	}

	start := 0
	if l.Cursor >= room {
		start = l.Cursor - room + 1
	}
	selected := lipgloss.NewStyle().Foreground(focusBorder).Bold(true)
	for i := start; i < len(l.Items) && len(rows) < height; i++ {
		item := padRight(l.Items[i], max(1, width-2))
		if i == l.Cursor {
			rows = append(rows, selected.Render("▶ "+item))
			continue
		}
		rows = append(rows, "  "+item)
	}
	return strings.Join(rows, "\n")
}
