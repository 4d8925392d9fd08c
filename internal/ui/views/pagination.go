package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"outcomepicker/internal/pagination"
)

// pageSlots is the number of page numbers shown in the footer
const pageSlots = 7

// Pagination renders the page footer: "‹ 1 2 [3] 4 ›  21–25 of 25"
func (r *Renderer) Pagination(p PickerProps, width int) string {
	if p.Loading {
		return r.styles.Dim.Render(fmt.Sprintf("Loading page %d…", p.Page+1))
	}
	if p.PageCount == 0 {
		return r.styles.Dim.Render("0 results")
	}

	var pages []string
	start, end := pagination.Window(p.Page, p.PageCount, pageSlots)
	if start > 0 {
		pages = append(pages, r.styles.Page.Render("…"))
	}
	for i := start; i < end; i++ {
		if i == p.Page {
			pages = append(pages, r.styles.PageCurrent.Render(fmt.Sprintf("[%d]", i+1)))
		} else {
			pages = append(pages, r.styles.Page.Render(fmt.Sprintf("%d", i+1)))
		}
	}
	if end < p.PageCount {
		pages = append(pages, r.styles.Page.Render("…"))
	}

	prev, next := "‹", "›"
	if p.Page == 0 {
		prev = r.styles.Dim.Render(prev)
	}
	if p.Page >= p.PageCount-1 {
		next = r.styles.Dim.Render(next)
	}

	first := pagination.Offset(p.Page, p.PageSize) + 1
	last := first + p.PageEntries - 1
	if p.PageEntries == 0 {
		last = first
	}
	summary := r.styles.Dim.Render(fmt.Sprintf("%d–%d of %d", first, last, p.Total))

	line := prev + " " + strings.Join(pages, " ") + " " + next + "  " + summary
	return ansi.Truncate(line, width, "…")
}
