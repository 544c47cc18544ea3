package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline maps values onto eight block heights between their min and
// max. Only the last width values are drawn.
func Sparkline(values []float64, width int) string {
	if width <= 0 || len(values) == 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(len(sparkRunes)-1)))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// Series is one line of a Chart.
type Series struct {
	Label  string
	Values []float64
	Color  lipgloss.Color
	// Suffix is printed after the latest value, e.g. a unit or trend arrow.
	Suffix string
}

// Chart draws each series as a labelled sparkline with its latest value.
type Chart struct {
	Series []Series
	Empty  string
}

func (c Chart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(c.Series) == 0 || len(c.Series[0].Values) == 0 {
		if c.Empty == "" {
			return "(no data)"
		}
		return c.Empty
	}

	labelW := 0
	for _, s := range c.Series {
		labelW = max(labelW, lipgloss.Width(s.Label))
	}
	const valueW = 18
	sparkW := max(1, width-labelW-valueW-2)

	lines := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		if len(lines) >= height {
			break
		}
		style := lipgloss.NewStyle()
		if s.Color != "" {
			style = style.Foreground(s.Color)
		}
		latest := ""
		if n := len(s.Values); n > 0 {
			latest = fmt.Sprintf("%.1f %s", s.Values[n-1], s.Suffix)
		}
		line := padRight(s.Label, labelW) + " " +
			style.Render(padRight(Sparkline(s.Values, sparkW), sparkW)) + " " +
			strings.TrimSpace(latest)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Bar is a horizontal gauge filled to Percent (0..100).
type Bar struct {
	Label   string
	Percent float64
	Color   lipgloss.Color
}

func (b Bar) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	pct := math.Max(0, math.Min(100, b.Percent))
	value := fmt.Sprintf(" %5.1f%%", b.Percent)
	prefix := ""
	if b.Label != "" {
		prefix = b.Label + " "
	}
	track := max(1, width-lipgloss.Width(prefix)-lipgloss.Width(value))
	filled := int(math.Round(pct / 100 * float64(track)))

	fill := lipgloss.NewStyle()
	if b.Color != "" {
		fill = fill.Foreground(b.Color)
	}
	return prefix + fill.Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(defaultBorder).Render(strings.Repeat("░", track-filled)) +
		value
}
