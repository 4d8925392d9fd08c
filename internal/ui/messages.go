package ui

import (
	"outcomepicker/internal/domain"
	"outcomepicker/internal/ui/services/search"
)

// resultsMsg carries the answer to a search request
type resultsMsg struct {
	req  search.Request
	page domain.ResultPage
	err  error
}

// debounceMsg fires when typing pauses; only the newest token is applied
type debounceMsg struct {
	token uint64
	query string
}

// pagerDoneMsg is sent when the external pager exits
type pagerDoneMsg struct {
	err error
}
