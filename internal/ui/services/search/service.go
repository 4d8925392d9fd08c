package search

import (
	"log"
	"strings"

	"outcomepicker/internal/domain"
	"outcomepicker/internal/eventbus"
	"outcomepicker/internal/pagination"
)

// Service handles the query, paging and loading state of the results list
type Service struct {
	state    *State
	bus      eventbus.EventBus
	pageSize int
}

// NewService creates a new search service
func NewService(bus eventbus.EventBus, pageSize int) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		state:    &State{},
		bus:      bus,
		pageSize: pageSize,
	}
}

// SetQuery starts a new search. The page always goes back to 0, even when the
// text is unchanged, and the service enters the loading state.
func (s *Service) SetQuery(text string) Request {
	s.state.Query = strings.TrimSpace(text)
	s.state.Page = 0
	return s.begin()
}

// Refresh re-requests the current query and page
func (s *Service) Refresh() Request {
	return s.begin()
}

// SetResults stores the entries of the current page and leaves the loading
// state. It reports whether the page had to be clamped because it no longer
// exists for the new total; the entries are dropped in that case.
func (s *Service) SetResults(entries []domain.Outcome, total int) bool {
	if total < 0 {
		total = 0
	}
	// A source that under-reports its total must not break page*size < total
	if minTotal := pagination.Offset(s.state.Page, s.pageSize) + len(entries); len(entries) > 0 && total < minTotal {
		total = minTotal
	}

	s.state.Entries = entries
	s.state.Total = total
	s.state.Loading = false
	s.state.Err = nil
	s.state.Clamped = false

	if clamped := pagination.Clamp(s.state.Page, total, s.pageSize); clamped != s.state.Page {
		log.Printf("Search page %d out of range for %d results, clamping to %d", s.state.Page, total, clamped)
		s.state.Page = clamped
		s.state.Entries = nil
		s.state.Clamped = true
	}
	return s.state.Clamped
}

// Resolve applies a fetched page if req is still the newest request.
// Stale responses are dropped and false is returned.
func (s *Service) Resolve(req Request, page domain.ResultPage) bool {
	if req.Generation != s.state.Generation {
		log.Printf("Dropping stale results for '%s' (generation %d, current %d)", req.Query, req.Generation, s.state.Generation)
		return false
	}
	s.SetResults(page.Entries, page.Total)

	log.Printf("Search completed for '%s': page %d, %d of %d results", s.state.Query, s.state.Page, len(s.state.Entries), s.state.Total)
	s.bus.Publish(eventbus.ResultsLoadedEvent{
		Query: s.state.Query,
		Page:  s.state.Page,
		Count: len(s.state.Entries),
		Total: s.state.Total,
	})
	return true
}

// Fail records a fetch error for req if it is still the newest request
func (s *Service) Fail(req Request, err error) bool {
	if req.Generation != s.state.Generation {
		return false
	}
	s.state.Loading = false
	s.state.Err = err

	s.bus.Publish(eventbus.SearchFailedEvent{
		Query: s.state.Query,
		Page:  s.state.Page,
		Err:   err,
	})
	return true
}

// PageCount returns the number of pages for the current total
func (s *Service) PageCount() int {
	return pagination.PageCount(s.state.Total, s.pageSize)
}

// SetPage moves to page n, bounded to [0, PageCount()-1]. It returns the
// request to issue and whether the page changed.
func (s *Service) SetPage(n int) (Request, bool) {
	n = pagination.Clamp(n, s.state.Total, s.pageSize)
	if n == s.state.Page {
		return Request{}, false
	}

	old := s.state.Page
	s.state.Page = n
	s.bus.Publish(eventbus.PageChangedEvent{OldPage: old, NewPage: n})
	return s.begin(), true
}

// NextPage moves one page forward
func (s *Service) NextPage() (Request, bool) {
	return s.SetPage(s.state.Page + 1)
}

// PrevPage moves one page back
func (s *Service) PrevPage() (Request, bool) {
	return s.SetPage(s.state.Page - 1)
}

// Reset discards the query and results. Any in-flight request becomes stale.
func (s *Service) Reset() {
	gen := s.state.Generation + 1
	s.state = &State{Generation: gen}
}

// Query returns the current search query
func (s *Service) Query() string { return s.state.Query }

// Loading reports whether a request is in flight
func (s *Service) Loading() bool { return s.state.Loading }

// Page returns the current 0-based page
func (s *Service) Page() int { return s.state.Page }

// PageSize returns the fixed page size
func (s *Service) PageSize() int { return s.pageSize }

// Total returns the total number of matches reported by the source
func (s *Service) Total() int { return s.state.Total }

// Entries returns the entries of the current page
func (s *Service) Entries() []domain.Outcome { return s.state.Entries }

// Clamped reports whether the last applied results moved the page back into range
func (s *Service) Clamped() bool { return s.state.Clamped }

// Err returns the error of the last failed request, if any
func (s *Service) Err() error { return s.state.Err }

// IDs returns the ids of the current page entries
func (s *Service) IDs() []string {
	return domain.ResultPage{Entries: s.state.Entries}.IDs()
}

// ShouldHighlight reports whether text contains the current query
func (s *Service) ShouldHighlight(text string) bool {
	if s.state.Query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(s.state.Query))
}

func (s *Service) begin() Request {
	s.state.Generation++
	s.state.Loading = true
	s.state.Err = nil
	// rows of the previous page must not stay actionable while the next one loads
	s.state.Entries = nil

	req := Request{
		Query:      s.state.Query,
		Page:       s.state.Page,
		PageSize:   s.pageSize,
		Generation: s.state.Generation,
	}
	s.bus.Publish(eventbus.SearchStartedEvent{
		Query:      req.Query,
		Page:       req.Page,
		Generation: req.Generation,
	})
	return req
}
