package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	defaultBorder = lipgloss.Color("#6c7086")
	focusBorder   = lipgloss.Color("#89b4fa")
	paneText      = lipgloss.Color("#cdd6f4")
)

// Pane is a rounded box with the title set into the top border. Height 0
// sizes the pane to its content, capped by the height it is given.
type Pane struct {
	Title   string
	Content string
	Height  int
	Accent  lipgloss.Color
	Focused bool
}

func (p Pane) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	width = max(width, 4)

	contentLines := splitLines(p.Content)
	h := p.Height
	if h <= 0 {
		h = len(contentLines) + 2
	}
	h = max(3, min(h, height))

	border := defaultBorder
	if p.Accent != "" {
		border = p.Accent
	}
	if p.Focused {
		border = focusBorder
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(paneText).Bold(true)

	innerWidth := width - 2
	contentWidth := max(1, innerWidth-2)

	top := borderStyle.Render("╭") + titleBar(p.Title, innerWidth, borderStyle, titleStyle) + borderStyle.Render("╮")
	v := borderStyle.Render("│")

	rows := make([]string, 0, h)
	rows = append(rows, top)
	for i := 0; i < h-2; i++ {
		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		rows = append(rows, v+" "+padRight(line, contentWidth)+" "+v)
	}
	rows = append(rows, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(rows, "\n")
}

func titleBar(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	title = strings.TrimSpace(title)
	if title == "" || innerWidth < 5 {
		return borderStyle.Render(strings.Repeat("─", innerWidth))
	}
	text := " " + title + " "
	if ansi.StringWidth(text) > innerWidth-1 {
		text = " " + ansi.Truncate(title, max(1, innerWidth-3), "") + " "
	}
	rest := max(0, innerWidth-1-ansi.StringWidth(text))
	return borderStyle.Render("─") +
		titleStyle.Render(text) +
		borderStyle.Render(strings.Repeat("─", rest))
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
