package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/airwatch/internal/airquality"
	"github.com/jask/airwatch/internal/atlas"
	"github.com/jask/airwatch/internal/dashboard"
	"github.com/jask/airwatch/widgets"
)

// wideLayout is the width from which detail and policy sit side by side.
const wideLayout = 110

func renderBody(snap dashboard.Snapshot, places *atlas.Atlas, width int) string {
	stack := widgets.VStack{
		Fit:     true,
		Spacing: 0,
		Widgets: []widgets.Widget{
			widgets.Text(renderMetricsBar(snap)),
			widgets.HStack{
				Breakpoint: wideLayout,
				Gap:        1,
				Ratios:     []float64{0.45, 0.55},
				Widgets: []widgets.Widget{
					sectorListPane(snap),
					detailPane(snap, places),
				},
			},
			trendPane(snap),
			policyPane(snap),
		},
	}
	return stack.Render(width, 1<<16)
}

func renderMetricsBar(snap dashboard.Snapshot) string {
	if snap.Status == nil {
		if snap.HasSelection {
			return mutedStyle.Render("Loading sector readings...")
		}
		return mutedStyle.Render("Select a sector to view readings")
	}
	r := snap.Status.Readings
	cells := []string{
		metric("PM2.5", fmt.Sprintf("%.1f", r.PM25), "µg/m³", tierColor(airquality.TierFor(r.PM25))),
		metric("PM10", fmt.Sprintf("%.1f", r.PM10), "µg/m³", tierColor(airquality.PM10Tier(r.PM10))),
		metric("NO₂", fmt.Sprintf("%.1f", r.NO2), "ppb", colorSky),
		metric("CO", fmt.Sprintf("%.2f", r.CO), "ppm", colorSky),
		metric("Traffic", fmt.Sprintf("%.0f%%", r.TrafficIndex*100), "", colorBlue),
		metric("Wind", fmt.Sprintf("%.1f", r.WindSpeed), "m/s", colorTeal),
	}
	return strings.Join(cells, mutedStyle.Render("  │  "))
}

func metric(label, value, unit string, color lipgloss.Color) string {
	out := labelStyle.Render(label+" ") + lipgloss.NewStyle().Foreground(color).Bold(true).Render(value)
	if unit != "" {
		out += " " + mutedStyle.Render(unit)
	}
	return out
}

func sectorListPane(snap dashboard.Snapshot) widgets.Widget {
	if !snap.SectorsLoaded {
		return widgets.Pane{Title: "Sectors", Content: mutedStyle.Render("Loading sectors...")}
	}
	rows := make([][]string, 0, len(snap.Sectors))
	selected := -1
	for i, s := range snap.Sectors {
		if snap.HasSelection && s.ID == snap.SelectedID {
			selected = i
		}
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			s.Name,
			fmt.Sprintf("%.1f", s.PM25),
			fmt.Sprintf("%.1f", s.PM10),
			airquality.LevelFor(s.PM25).String(),
		})
	}
	sectors := snap.Sectors
	table := widgets.Table{
		Headers:  []string{"ID", "Sector", "PM2.5", "PM10", "Level"},
		Rows:     rows,
		Selected: selected,
		Empty:    mutedStyle.Render("No sectors reported"),
		RowStyle: func(i int) lipgloss.Style {
			return lipgloss.NewStyle().Foreground(levelColor(airquality.LevelFor(sectors[i].PM25)))
		},
	}
	return paneOf("Sectors", "", table)
}

func detailPane(snap dashboard.Snapshot, places *atlas.Atlas) widgets.Widget {
	st := snap.Status
	if st == nil {
		return widgets.Pane{Title: "Sector Detail", Content: mutedStyle.Render("No sector selected")}
	}
	r := st.Readings
	lines := []string{
		valueStyle.Render(st.SectorName) + "  " +
			lipgloss.NewStyle().Foreground(severityColor(st.Severity)).Bold(true).Render(st.Severity.Label()),
	}
	if p, ok := places.Lookup(st.SectorID); ok {
		lines = append(lines, mutedStyle.Render("📍 "+p.Coordinates()))
	}
	lines = append(lines,
		"",
		headerStyle.Render("Cause analysis"),
		field("Primary cause", st.PollutionCause),
		field("Traffic", airquality.TrafficBand(r.TrafficIndex)),
		field("Wind", airquality.WindDispersal(r.WindSpeed)),
	)
	if ratio, insight, ok := airquality.ParticulateRatio(r); ok {
		lines = append(lines, field("PM10/PM2.5", fmt.Sprintf("%.2f", ratio)), mutedStyle.Render("  "+insight))
	}
	lines = append(lines,
		"",
		headerStyle.Render("Status summary"),
		field("PM2.5", airquality.PM25Summary(r.PM25)),
		field("Traffic impact", airquality.TrafficImpact(r.TrafficIndex)),
		field("Wind", airquality.WindConditions(r.WindSpeed)),
	)
	return widgets.Pane{
		Title:   "Sector Detail",
		Content: strings.Join(lines, "\n"),
		Accent:  severityColor(st.Severity),
	}
}

func field(label, value string) string {
	return labelStyle.Render(label+": ") + value
}

func trendPane(snap dashboard.Snapshot) widgets.Widget {
	h := snap.History
	title := fmt.Sprintf("Air Quality Trends (Last %d Readings)", len(h))
	if len(h) == 0 {
		return widgets.Pane{Title: "Air Quality Trends", Content: mutedStyle.Render("Collecting data...")}
	}
	series := func(label, unit string, color lipgloss.Color, value func(dashboard.HistoryEntry) float64) widgets.Series {
		values := make([]float64, len(h))
		for i, e := range h {
			values[i] = value(e)
		}
		return widgets.Series{
			Label:  label,
			Values: values,
			Color:  color,
			Suffix: unit + " " + dashboard.Trend(h, value).Arrow(),
		}
	}
	chart := widgets.Chart{Series: []widgets.Series{
		series("PM2.5", "µg/m³", colorRed, func(e dashboard.HistoryEntry) float64 { return e.PM25 }),
		series("PM10", "µg/m³", colorPeach, func(e dashboard.HistoryEntry) float64 { return e.PM10 }),
		series("NO₂", "ppb", colorYellow, func(e dashboard.HistoryEntry) float64 { return e.NO2 }),
		series("CO", "ppm", colorSky, func(e dashboard.HistoryEntry) float64 { return e.CO }),
	}}
	footer := mutedStyle.Render(fmt.Sprintf("%s to %s", h[0].Time, h[len(h)-1].Time))
	return paneOf(title, footer, chart)
}

func policyPane(snap dashboard.Snapshot) widgets.Widget {
	const title = "Recommended Policy Restrictions"
	p := snap.Policy
	switch {
	case !snap.HasSelection:
		return widgets.Pane{Title: title, Content: mutedStyle.Render("No sector selected")}
	case p == nil:
		return widgets.Pane{Title: title, Content: mutedStyle.Render("Loading policy...")}
	case !p.Actionable():
		msg := p.Message
		if msg == "" {
			msg = "No policy action required for this sector."
		}
		return widgets.Pane{Title: title, Content: lipgloss.NewStyle().Foreground(colorGreen).Render("✓ " + msg), Accent: colorGreen}
	}

	d := p.Policy
	lines := []string{
		valueStyle.Render(d.Name) + "  " +
			lipgloss.NewStyle().Foreground(priorityColor(d.Priority)).Bold(true).Render(strings.ToUpper(string(d.Priority))),
		field("Reason", d.Reason),
		widgets.Bar{
			Label:   labelStyle.Render("Expected PM2.5 reduction"),
			Percent: d.ExpectedPM25ReductionPercentage,
			Color:   colorGreen,
		}.Render(60, 1),
		field("Estimated time to effect", fmt.Sprintf("%g hrs", d.EstimatedTimeHours)),
		"",
	}
	switch {
	case snap.SimulationState == dashboard.SimulationRunning:
		lines = append(lines, noticeStyle.Render("Simulating..."))
	case !snap.PolicyCurrent:
		lines = append(lines, mutedStyle.Render("Refreshing policy..."))
	default:
		lines = append(lines, mutedStyle.Render("press s to simulate policy impact"))
	}
	if snap.Simulation != nil {
		lines = append(lines, "", renderSimulation(*snap.Simulation, d.EstimatedTimeHours))
	}
	return widgets.Pane{Title: title, Content: strings.Join(lines, "\n"), Accent: priorityColor(d.Priority)}
}

func renderSimulation(sim airquality.SimulationResult, hours float64) string {
	lines := []string{headerStyle.Render("Simulation Results")}
	if sim.Confidence != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(confidenceColor(sim.Confidence)).Bold(true).
			Render(strings.ToUpper(string(sim.Confidence))+" CONFIDENCE"))
	}
	lines = append(lines,
		field("Current PM2.5", fmt.Sprintf("%.1f µg/m³", sim.CurrentPM25))+"  →  "+
			field("After policy", fmt.Sprintf("%.1f µg/m³", sim.SimulatedPM25After)),
	)
	reduction := fmt.Sprintf("Expected reduction: -%.1f%%", sim.ReductionPercentage)
	if rr := sim.ReductionRange; rr != nil {
		reduction += fmt.Sprintf(" (Range: %g%% - %g%%)", rr.Min, rr.Max)
	}
	lines = append(lines, reduction, widgets.Bar{
		Percent: airquality.ReductionMagnitude(sim.ReductionPercentage),
		Color:   colorGreen,
	}.Render(60, 1))
	if pr := sim.PM25Range; pr != nil {
		lines = append(lines, field("PM2.5 projection", fmt.Sprintf("Best %g  Expected %g  Worst %g µg/m³",
			pr.BestCase, pr.Expected, pr.WorstCase)))
	}
	if f := sim.MetAdjustmentFactor; f != nil && *f != 0 {
		lines = append(lines, field("Weather impact", airquality.MetAdjustment(*f)))
	}
	lines = append(lines, field("Details", sim.Explanation))
	if sim.Methodology != "" {
		lines = append(lines, field("Methodology", sim.Methodology))
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(colorGreen).Render(fmt.Sprintf(
		"Recommended action: proceed with implementing %s to reduce air pollution by %.1f%% in approximately %g hours.",
		sim.PolicyName, sim.ReductionPercentage, hours)))
	return strings.Join(lines, "\n")
}

// paneWidget frames an inner widget, rendered at the pane's content width.
type paneWidget struct {
	title  string
	footer string
	inner  widgets.Widget
}

func paneOf(title, footer string, inner widgets.Widget) widgets.Widget {
	return paneWidget{title: title, footer: footer, inner: inner}
}

func (p paneWidget) Render(width, height int) string {
	content := p.inner.Render(max(1, width-4), height)
	if p.footer != "" {
		content += "\n" + p.footer
	}
	return widgets.Pane{Title: p.title, Content: content}.Render(width, height)
}

func renderHeader(snap dashboard.Snapshot, spin string, width int) string {
	left := titleStyle.Render("AirWatch") + mutedStyle.Render(" · air quality policy dashboard")
	if snap.Loading {
		left += "  " + spin + mutedStyle.Render(" loading")
	}
	var right string
	if sec, ok := snap.Selected(); ok {
		right = valueStyle.Render(sec.Name)
	}
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	line := left + strings.Repeat(" ", gap) + right
	if snap.Error != "" {
		line += "\n" + errorStyle.Render("⚠ "+snap.Error)
	}
	return line
}

func renderFooter(snap dashboard.Snapshot, timeFormat, notice string) string {
	updated := "never"
	if !snap.LastUpdate.IsZero() {
		updated = snap.LastUpdate.Format(timeFormat)
	}
	line := footerStyle.Render(fmt.Sprintf("Last update %s · refreshing every %s", updated, snap.Interval))
	if notice != "" {
		line += "  " + noticeStyle.Render(notice)
	}
	return line
}
