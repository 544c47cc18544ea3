package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VStack stacks widgets top to bottom. With Fit set each child receives
// the full height and keeps its natural size, which suits content that
// scrolls inside a viewport.
type VStack struct {
	Widgets []Widget
	Spacing int
	Ratios  []float64
	Fit     bool
}

func (v VStack) Render(width, height int) string {
	n := len(v.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gap := max(0, v.Spacing)
	sep := strings.Repeat("\n", gap+1)

	if v.Fit {
		blocks := make([]string, 0, n)
		for _, w := range v.Widgets {
			if out := w.Render(width, height); out != "" {
				blocks = append(blocks, out)
			}
		}
		return strings.Join(blocks, sep)
	}

	heights := shares(max(1, height-gap*(n-1)), n, v.Ratios)
	blocks := make([]string, n)
	for i, w := range v.Widgets {
		h := max(1, heights[i])
		blocks[i] = clipLines(w.Render(width, h), h)
	}
	return strings.Join(blocks, sep)
}

// HStack places widgets side by side. Below Breakpoint columns it falls
// back to a fitted VStack.
type HStack struct {
	Widgets    []Widget
	Ratios     []float64
	Gap        int
	Breakpoint int
}

func (h HStack) Render(width, height int) string {
	n := len(h.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	if h.Breakpoint > 0 && width < h.Breakpoint {
		return VStack{Widgets: h.Widgets, Fit: true}.Render(width, height)
	}

	gap := max(0, h.Gap)
	widths := shares(max(1, width-gap*(n-1)), n, h.Ratios)
	cols := make([][]string, n)
	rows := 0
	for i, w := range h.Widgets {
		cols[i] = strings.Split(w.Render(max(1, widths[i]), height), "\n")
		rows = max(rows, len(cols[i]))
	}

	sep := strings.Repeat(" ", gap)
	var b strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for i, col := range cols {
			if i > 0 {
				b.WriteString(sep)
			}
			var cell string
			if r < len(col) {
				cell = col[r]
			}
			b.WriteString(padRight(cell, widths[i]))
		}
	}
	return b.String()
}

// shares splits total into n weighted parts. Without one ratio per part
// the split is even. Remainders go to the leading parts.
func shares(total, n int, ratios []float64) []int {
	weights := make([]float64, n)
	sum := 0.0
	for i := range weights {
		weights[i] = 1
		if len(ratios) == n && ratios[i] > 0 {
			weights[i] = ratios[i]
		}
		sum += weights[i]
	}
	out := make([]int, n)
	used := 0
	for i, w := range weights {
		out[i] = int(float64(total) * w / sum)
		used += out[i]
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// padRight truncates or pads s to exactly width terminal cells.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
