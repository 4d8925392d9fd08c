package views

import (
	"strings"
)

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete picker view
func (r *Renderer) Render(p PickerProps) string {
	width := p.Width
	if width <= 0 {
		width = 80
	}
	inner := width - r.styles.Tray.GetHorizontalFrameSize()
	if inner < 20 {
		inner = 20
	}

	var body strings.Builder
	body.WriteString(r.SearchLine(p, inner))
	body.WriteString("\n")
	body.WriteString(r.SelectAllLine(p, inner))
	body.WriteString("\n\n")
	if header := r.ResultCountLine(p, inner); header != "" {
		body.WriteString(header)
		body.WriteString("\n")
	}
	body.WriteString(r.ResultsList(p, inner))
	body.WriteString("\n\n")
	body.WriteString(r.Pagination(p, inner))

	footer := p.Help
	if p.Status != "" {
		footer = p.Status + "\n" + footer
	}
	return r.Tray(p.Title, p.SelectedCount, body.String(), footer, width)
}
