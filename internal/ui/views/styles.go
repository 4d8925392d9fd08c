package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the picker
type Styles struct {
	Title         lipgloss.Style
	Tray          lipgloss.Style
	Dim           lipgloss.Style
	Label         lipgloss.Style
	Highlight     lipgloss.Style
	CursorRow     lipgloss.Style
	Checked       lipgloss.Style
	Unchecked     lipgloss.Style
	Prompt        lipgloss.Style
	PromptFocused lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	Empty         lipgloss.Style
	PageCurrent   lipgloss.Style
	Page          lipgloss.Style
	Help          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Tray: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Dim:           lipgloss.NewStyle().Faint(true),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		CursorRow:     lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Checked:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Unchecked:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		PromptFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Empty:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		PageCurrent:   lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Page:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Help:          lipgloss.NewStyle().Faint(true),
	}
}
