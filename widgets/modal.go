package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var popupStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(focusBorder).
	Padding(0, 1)

// RenderPopup centres popup in a bordered card over base. Base rows
// outside the card's columns stay visible.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	card := strings.Split(popupStyle.Render(popup), "\n")
	cardWidth := 0
	for _, line := range card {
		cardWidth = max(cardWidth, ansi.StringWidth(line))
	}
	cardWidth = min(cardWidth, width)
	x := (width - cardWidth) / 2
	y := max(0, (height-len(card))/2)

	rows := strings.Split(base, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i := range rows {
		rows[i] = padRight(rows[i], width)
	}

	for i, line := range card {
		r := y + i
		if r >= height {
			break
		}
		under := rows[r]
		rows[r] = padRight(
			ansi.Truncate(under, x, "")+padRight(line, cardWidth)+skipColumns(under, x+cardWidth),
			width,
		)
	}
	return strings.Join(rows, "\n")
}

// skipColumns drops the first n cells of s, keeping styling that follows.
func skipColumns(s string, n int) string {
	if n <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, n, ""))
}
