package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/airwatch/internal/airquality"
)

// Catppuccin Mocha
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"
	colorMauve    lipgloss.Color = "#cba6f7"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface0 lipgloss.Color = "#313244"
)

// Five-band level colours used by the sector list.
const (
	colorHazardous     lipgloss.Color = "#dc2626"
	colorVeryUnhealthy lipgloss.Color = "#ef4444"
	colorUnhealthy     lipgloss.Color = "#f97316"
	colorSensitive     lipgloss.Color = "#facc15"
	colorModerate      lipgloss.Color = "#22c55e"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	labelStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(colorSurface0).Background(colorRed).Bold(true).Padding(0, 1)
	noticeStyle = lipgloss.NewStyle().Foreground(colorYellow)
	footerStyle = lipgloss.NewStyle().Foreground(colorOverlay0)
)

func levelColor(l airquality.Level) lipgloss.Color {
	switch l {
	case airquality.LevelHazardous:
		return colorHazardous
	case airquality.LevelVeryUnhealthy:
		return colorVeryUnhealthy
	case airquality.LevelUnhealthy:
		return colorUnhealthy
	case airquality.LevelSensitive:
		return colorSensitive
	default:
		return colorModerate
	}
}

func tierColor(t airquality.Tier) lipgloss.Color {
	switch t {
	case airquality.TierDanger:
		return colorRed
	case airquality.TierWarn:
		return colorPeach
	default:
		return colorGreen
	}
}

func severityColor(s airquality.Severity) lipgloss.Color {
	switch s {
	case airquality.SeverityHazardous:
		return colorHazardous
	case airquality.SeverityVeryUnhealthy:
		return colorVeryUnhealthy
	case airquality.SeverityUnhealthy:
		return colorUnhealthy
	case airquality.SeverityUnhealthyForSensitive:
		return colorSensitive
	default:
		return colorModerate
	}
}

func priorityColor(p airquality.Priority) lipgloss.Color {
	switch p {
	case airquality.PriorityCritical:
		return colorRed
	case airquality.PriorityHigh:
		return colorPeach
	case airquality.PriorityMedium:
		return colorYellow
	default:
		return colorTeal
	}
}

func confidenceColor(c airquality.Confidence) lipgloss.Color {
	switch c {
	case airquality.ConfidenceHigh:
		return colorGreen
	case airquality.ConfidenceMedium:
		return colorYellow
	default:
		return colorPeach
	}
}
