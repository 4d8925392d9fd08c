package search

import "outcomepicker/internal/domain"

// DefaultPageSize is used when a service is created with a non-positive size
const DefaultPageSize = 10

// State holds search state
type State struct {
	Query      string
	Loading    bool
	Page       int // 0-based
	Total      int
	Entries    []domain.Outcome
	Generation uint64 // bumped for every outgoing request
	Err        error
	Clamped    bool // last results moved Page back into range
}

// Request describes the fetch the UI should issue after a state change.
// Generation identifies it so late responses can be discarded.
type Request struct {
	Query      string
	Page       int
	PageSize   int
	Generation uint64
}
