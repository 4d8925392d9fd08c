// Package pagination holds the page arithmetic shared by the search service
// and the results footer.
package pagination

// PageCount returns ceil(total / pageSize), or 0 when there is nothing to page
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Clamp bounds page to [0, PageCount-1]. With no pages the result is 0.
func Clamp(page, total, pageSize int) int {
	last := PageCount(total, pageSize) - 1
	if page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	return page
}

// Offset returns the index of the first entry on page
func Offset(page, pageSize int) int {
	if page <= 0 || pageSize <= 0 {
		return 0
	}
	return page * pageSize
}

// Window returns the half-open range [start, end) of page numbers to show in
// a footer of at most width slots, keeping current roughly centred.
func Window(current, pageCount, width int) (start, end int) {
	if pageCount <= 0 || width <= 0 {
		return 0, 0
	}
	if width >= pageCount {
		return 0, pageCount
	}
	start = current - width/2
	if start < 0 {
		start = 0
	}
	end = start + width
	if end > pageCount {
		end = pageCount
		start = end - width
	}
	return start, end
}
