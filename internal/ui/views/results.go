package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"outcomepicker/internal/domain"
)

// SearchLine renders the search prompt and input
func (r *Renderer) SearchLine(p PickerProps, width int) string {
	prompt := r.styles.Prompt.Render("Search: ")
	if p.SearchFocused {
		prompt = r.styles.PromptFocused.Render("Search: ")
	}
	line := prompt + p.SearchInput
	if p.Loading {
		line += "  " + r.styles.StatusLoading.Render(p.Spinner)
	}
	return ansi.Truncate(line, width, "…")
}

// SelectAllLine renders the "select all" checkbox for the current page
func (r *Renderer) SelectAllLine(p PickerProps, width int) string {
	box := r.Checkbox(CheckStateOf(p.AllChecked, p.SomeChecked))
	text := "Select all on this page"
	if p.AllChecked && p.PageEntries > 0 {
		text = "Deselect all on this page"
	}
	if p.PageEntries == 0 {
		text = r.styles.Dim.Render(text)
	}
	return ansi.Truncate(box+" "+text, width, "…")
}

// ResultCountText is the result-count header for total matches
func ResultCountText(total int) string {
	switch total {
	case 0:
		return "The search returned no results"
	case 1:
		return "1 result"
	}
	return fmt.Sprintf("%d results", total)
}

// ResultCountLine renders the result-count header; empty while loading or failed
func (r *Renderer) ResultCountLine(p PickerProps, width int) string {
	if p.Loading || p.Err != nil {
		return ""
	}
	return r.styles.Dim.Render(ansi.Truncate(ResultCountText(p.Total), width, "…"))
}

// ResultsList renders the visible rows, or the loading, error or empty message.
// While a page loads only the spinner is shown.
func (r *Renderer) ResultsList(p PickerProps, width int) string {
	switch {
	case p.Loading:
		return r.styles.StatusLoading.Render(p.Spinner + " Loading outcomes…")
	case p.Err != nil:
		return r.styles.StatusError.Render(ansi.Truncate("Could not load outcomes: "+domain.SanitizeText(p.Err.Error()), width, "…"))
	case len(p.Rows) == 0 && p.Query != "":
		return r.styles.Empty.Render(ansi.Truncate(fmt.Sprintf("No outcomes match %q", p.Query), width, "…"))
	case len(p.Rows) == 0:
		return r.styles.Empty.Render("No outcomes")
	}

	lines := make([]string, 0, len(p.Rows))
	for _, row := range p.Rows {
		lines = append(lines, r.renderRow(row, p, width))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderRow(row Row, p PickerProps, width int) string {
	cursor := "  "
	if row.Cursor {
		cursor = r.styles.Highlight.Render("›") + " "
	}

	parts := []string{cursor, r.Checkbox(CheckStateOf(row.Checked, false)), " "}
	if p.ShowLabels && row.Outcome.Label != "" {
		parts = append(parts, r.styles.Label.Render(row.Outcome.Label), " ")
	}
	parts = append(parts, r.highlightMatch(row.Outcome.Title, p.Query))
	if p.ShowDescriptions && row.Outcome.Description != "" {
		parts = append(parts, r.styles.Dim.Render(" — "+domain.TruncateDescription(row.Outcome.Description)))
	}

	line := ansi.Truncate(strings.Join(parts, ""), width, "…")
	if row.Cursor {
		line = r.styles.CursorRow.Render(line + strings.Repeat(" ", max(0, width-lipgloss.Width(line))))
	}
	return line
}

// highlightMatch highlights every case-insensitive occurrence of query in text
func (r *Renderer) highlightMatch(text, query string) string {
	if query == "" {
		return text
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	if len(lowerText) != len(text) || !strings.Contains(lowerText, lowerQuery) {
		// byte offsets are only safe when lower-casing kept the length
		return text
	}

	var b strings.Builder
	rest := 0
	for {
		i := strings.Index(lowerText[rest:], lowerQuery)
		if i < 0 {
			break
		}
		start := rest + i
		end := start + len(lowerQuery)
		b.WriteString(text[rest:start])
		b.WriteString(r.styles.Highlight.Render(text[start:end]))
		rest = end
	}
	b.WriteString(text[rest:])
	return b.String()
}
