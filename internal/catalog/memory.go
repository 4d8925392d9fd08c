package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"outcomepicker/internal/domain"
	"outcomepicker/internal/pagination"
)

// Match scores, lower is better
const (
	scoreExact = iota
	scorePrefix
	scoreTitle
	scoreDescription
	scoreFuzzy
	noMatch = -1
)

// MemorySource is an in-memory outcome catalog
type MemorySource struct {
	mu       sync.RWMutex
	outcomes map[string]domain.Outcome
}

// NewMemorySource creates a memory-based catalog holding outcomes
func NewMemorySource(outcomes []domain.Outcome) *MemorySource {
	s := &MemorySource{
		outcomes: make(map[string]domain.Outcome, len(outcomes)),
	}
	for _, o := range outcomes {
		s.outcomes[o.ID] = o
	}
	return s
}

// Add stores or replaces an outcome
func (s *MemorySource) Add(o domain.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes[o.ID] = o
}

// Remove deletes an outcome
func (s *MemorySource) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.outcomes, id)
}

// Len returns the number of stored outcomes
func (s *MemorySource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.outcomes)
}

// Search ranks matching outcomes and returns the requested page
func (s *MemorySource) Search(ctx context.Context, q Query) (domain.ResultPage, error) {
	if err := ctx.Err(); err != nil {
		return domain.ResultPage{}, err
	}
	q = normalize(q)
	text := strings.ToLower(strings.TrimSpace(q.Text))

	type hit struct {
		outcome domain.Outcome
		score   int
	}

	s.mu.RLock()
	hits := make([]hit, 0, len(s.outcomes))
	for _, o := range s.outcomes {
		if score := matchScore(o, text); score != noMatch {
			hits = append(hits, hit{outcome: o, score: score})
		}
	}
	s.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		if hits[i].outcome.Title != hits[j].outcome.Title {
			return hits[i].outcome.Title < hits[j].outcome.Title
		}
		return hits[i].outcome.ID < hits[j].outcome.ID
	})

	page := domain.ResultPage{Total: len(hits)}
	start := pagination.Offset(q.Page, q.PageSize)
	if start >= len(hits) {
		return page, nil
	}
	end := start + q.PageSize
	if end > len(hits) {
		end = len(hits)
	}
	page.Entries = make([]domain.Outcome, 0, end-start)
	for _, h := range hits[start:end] {
		page.Entries = append(page.Entries, h.outcome)
	}
	return page, nil
}

// Get returns the outcomes for ids in order, skipping unknown ids
func (s *MemorySource) Get(ctx context.Context, ids []string) ([]domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]domain.Outcome, 0, len(ids))
	for _, id := range ids {
		if o, ok := s.outcomes[id]; ok {
			found = append(found, o)
		}
	}
	return found, nil
}

// Close is a no-op
func (s *MemorySource) Close() error { return nil }

// matchScore ranks o against a lower-cased query; noMatch when it does not match
func matchScore(o domain.Outcome, text string) int {
	if text == "" {
		return scoreExact
	}
	id := strings.ToLower(o.ID)
	label := strings.ToLower(o.Label)
	title := strings.ToLower(o.Title)

	switch {
	case id == text || label == text:
		return scoreExact
	case strings.HasPrefix(label, text) || strings.HasPrefix(id, text):
		return scorePrefix
	case strings.Contains(title, text) || strings.Contains(label, text) || strings.Contains(id, text):
		return scoreTitle
	case strings.Contains(strings.ToLower(o.Description), text):
		return scoreDescription
	case fuzzyMatch(strings.Fields(title), strings.Fields(text)):
		return scoreFuzzy
	}
	return noMatch
}

// fuzzyMatch reports whether every query word is within a few edits of some title word
func fuzzyMatch(titleWords, queryWords []string) bool {
	if len(queryWords) == 0 {
		return false
	}
	for _, qw := range queryWords {
		budget := typoBudget(qw)
		if budget == 0 {
			return false
		}
		matched := false
		for _, tw := range titleWords {
			if levenshtein.ComputeDistance(qw, tw) <= budget {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// typoBudget is the number of edits tolerated for a query word
func typoBudget(word string) int {
	switch n := len([]rune(word)); {
	case n < 4:
		return 0
	case n < 8:
		return 1
	default:
		return 2
	}
}
