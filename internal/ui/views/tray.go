package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Tray renders the bordered panel that holds the picker
func (r *Renderer) Tray(title string, selected int, body, footer string, width int) string {
	heading := r.styles.Title.Render(title)
	if selected > 0 {
		heading += r.styles.Dim.Render(fmt.Sprintf("  %d selected", selected))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, heading, "", body)
	panel := r.styles.Tray.Width(width - r.styles.Tray.GetHorizontalBorderSize()).Render(content)
	if footer == "" {
		return panel
	}
	return lipgloss.JoinVertical(lipgloss.Left, panel, r.styles.Help.Render(footer))
}
