package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

type fixedWidget struct{ text string }

func (w fixedWidget) Render(width, height int) string {
	return w.text
}

func TestHStackRespectsRatios(t *testing.T) {
	h := HStack{Widgets: []Widget{fixedWidget{"A"}, fixedWidget{"B"}}, Ratios: []float64{0.75, 0.25}, Gap: 1}
	out := h.Render(21, 2)
	first := strings.Split(out, "\n")[0]
	if got := strings.Index(first, "B"); got != 16 {
		t.Fatalf("B at column %d, want 16: %q", got, first)
	}
}

func TestHStackCollapsesBelowBreakpoint(t *testing.T) {
	h := HStack{Widgets: []Widget{fixedWidget{"left"}, fixedWidget{"right"}}, Breakpoint: 40}
	out := h.Render(30, 10)
	if out != "left\nright" {
		t.Fatalf("collapsed = %q", out)
	}
}

func TestVStackSpacing(t *testing.T) {
	v := VStack{Widgets: []Widget{fixedWidget{"top"}, fixedWidget{"bottom"}}, Spacing: 1}
	out := v.Render(20, 6)
	if !strings.Contains(out, "top") || !strings.Contains(out, "bottom") {
		t.Fatalf("expected both widgets in output")
	}
}

func TestVStackFitKeepsNaturalHeight(t *testing.T) {
	v := VStack{Widgets: []Widget{fixedWidget{"a\nb"}, fixedWidget{""}, fixedWidget{"c"}}, Spacing: 1, Fit: true}
	if got := v.Render(10, 100); got != "a\nb\n\nc" {
		t.Fatalf("fit = %q", got)
	}
}

func TestPaneFitsContentAndWidth(t *testing.T) {
	p := Pane{Title: "Sector Detail", Content: "one\ntwo"}
	out := p.Render(24, 50)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 24 {
			t.Fatalf("line %d width = %d, want 24: %q", i, w, line)
		}
	}
	if !strings.Contains(ansi.Strip(lines[0]), "Sector Detail") {
		t.Fatalf("title missing: %q", lines[0])
	}
}

func TestPaneTruncatesToHeight(t *testing.T) {
	p := Pane{Content: "1\n2\n3\n4\n5"}
	if got := len(strings.Split(p.Render(10, 4), "\n")); got != 4 {
		t.Fatalf("lines = %d, want 4", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 8); got != "▁▂▃▄▅▆▇█" {
		t.Fatalf("sparkline = %q", got)
	}
	if got := Sparkline([]float64{5, 5, 5}, 10); got != "▁▁▁" {
		t.Fatalf("flat = %q", got)
	}
	if got := Sparkline([]float64{1, 2, 3, 4}, 2); len([]rune(got)) != 2 {
		t.Fatalf("windowed = %q", got)
	}
	if Sparkline(nil, 5) != "" {
		t.Fatal("empty input must render nothing")
	}
}

func TestChartShowsLatestValues(t *testing.T) {
	c := Chart{Series: []Series{
		{Label: "PM2.5", Values: []float64{100, 120.25}, Suffix: "↑"},
		{Label: "PM10", Values: []float64{200, 180}, Suffix: "↓"},
	}}
	out := ansi.Strip(c.Render(60, 5))
	if !strings.Contains(out, "120.2 ↑") && !strings.Contains(out, "120.3 ↑") {
		t.Fatalf("latest pm25 missing: %q", out)
	}
	if !strings.Contains(out, "180.0 ↓") {
		t.Fatalf("latest pm10 missing: %q", out)
	}
	if got := (Chart{Empty: "waiting"}).Render(60, 5); got != "waiting" {
		t.Fatalf("empty chart = %q", got)
	}
}

func TestBarClampsFill(t *testing.T) {
	full := ansi.Strip(Bar{Percent: 130}.Render(20, 1))
	if strings.Contains(full, "░") {
		t.Fatalf("over 100%% must fill the track: %q", full)
	}
	if !strings.HasSuffix(full, "130.0%") {
		t.Fatalf("value must show raw percent: %q", full)
	}
	empty := ansi.Strip(Bar{Percent: -5}.Render(20, 1))
	if strings.Contains(empty, "█") {
		t.Fatalf("negative must leave the track empty: %q", empty)
	}
}

func TestTableMarksSelectedRow(t *testing.T) {
	tbl := Table{
		Headers:  []string{"ID", "Name"},
		Rows:     [][]string{{"1", "Noida"}, {"2", "Gurgaon"}},
		Selected: 1,
	}
	lines := strings.Split(ansi.Strip(tbl.Render(30, 10)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[2], "▶ 2") {
		t.Fatalf("selected row = %q", lines[2])
	}
	if !strings.HasPrefix(lines[1], "  1") {
		t.Fatalf("plain row = %q", lines[1])
	}
}

func TestListScrollsToCursor(t *testing.T) {
	l := List{Items: []string{"a", "b", "c", "d", "e"}, Cursor: 4}
	out := ansi.Strip(l.Render(10, 2))
	if !strings.Contains(out, "▶ e") || strings.Contains(out, "a") {
		t.Fatalf("list = %q", out)
	}
}

func TestRenderPopupOverlaysWithoutDroppingBase(t *testing.T) {
	base := strings.Join([]string{
		"row-0................",
		"row-1................",
		"row-2................",
		"row-3................",
		"row-4................",
		"row-5................",
		"row-6................",
		"row-7................",
		"row-8................",
	}, "\n")
	out := RenderPopup(base, "Popup", 20, 9)
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("line count = %d, want 9", len(lines))
	}
	if !strings.Contains(out, "Popup") {
		t.Fatalf("expected popup content in output")
	}
	if !strings.Contains(lines[0], "row-0") {
		t.Fatalf("expected top base row preserved, got %q", lines[0])
	}
	if !strings.Contains(lines[8], "row-8") {
		t.Fatalf("expected bottom base row preserved, got %q", lines[8])
	}
}
