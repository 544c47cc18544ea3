package widgets

// Widget draws itself into a width x height cell grid.
type Widget interface {
	Render(width, height int) string
}

// Text is a Widget that renders a fixed string.
type Text string

func (t Text) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return string(t)
}
