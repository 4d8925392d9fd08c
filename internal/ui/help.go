package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"outcomepicker/internal/domain"
)

// HelpRenderer builds the long-form texts shown in the pager
type HelpRenderer struct {
	titleStyle   lipgloss.Style
	sectionStyle lipgloss.Style
	keyStyle     lipgloss.Style
	descStyle    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		sectionStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		keyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		descStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// RenderHelpContent renders every key binding grouped by section
func (r *HelpRenderer) RenderHelpContent(keys KeyMap) string {
	sections := []string{"Navigation", "Selection", "Search & Paging", "Other"}

	var help strings.Builder
	help.WriteString(r.titleStyle.Render("Outcome Picker Help"))
	help.WriteString("\n")

	for i, group := range keys.FullHelp() {
		help.WriteString(r.sectionStyle.Render(sections[i]))
		help.WriteString("\n")
		for _, b := range group {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %-10s %s\n", r.keyStyle.Render(h.Key), r.descStyle.Render(h.Desc)))
		}
	}
	return help.String()
}

// RenderOutcomeDetails renders one outcome for the pager
func (r *HelpRenderer) RenderOutcomeDetails(o domain.Outcome, selected bool, width int) string {
	if width <= 0 || width > 100 {
		width = 100
	}
	id := domain.SanitizeText(o.ID)
	o = o.Sanitized()

	var b strings.Builder
	b.WriteString(r.titleStyle.Render(o.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", r.keyStyle.Render("Label:"), r.descStyle.Render(o.Label)))
	b.WriteString(fmt.Sprintf("%s %s\n", r.keyStyle.Render("ID:   "), r.descStyle.Render(id)))
	state := "no"
	if selected {
		state = "yes"
	}
	b.WriteString(fmt.Sprintf("%s %s\n", r.keyStyle.Render("Selected:"), r.descStyle.Render(state)))
	b.WriteString(r.sectionStyle.Render("Description"))
	b.WriteString("\n")
	description := o.Description
	if description == "" {
		description = "(none)"
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Render(description))
	b.WriteString("\n")
	return b.String()
}
