// Package catalog provides the outcome sources the picker searches: an
// in-memory catalog loaded from a file, a SQLite catalog, and a remote HTTP
// service. All of them answer (query, page) with one page of outcomes and the
// total match count.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"outcomepicker/internal/config"
	"outcomepicker/internal/domain"
)

var (
	// ErrUnknownSource is returned by Open for an unsupported source kind
	ErrUnknownSource = errors.New("unknown source kind")
	// ErrNotFound is returned when an outcome id does not exist
	ErrNotFound = errors.New("outcome not found")
)

// Query is a single page request
type Query struct {
	Text     string
	Page     int // 0-based
	PageSize int
}

// Source answers page queries and id lookups
type Source interface {
	Search(ctx context.Context, q Query) (domain.ResultPage, error)
	// Get returns the outcomes for ids in the order given; unknown ids are skipped
	Get(ctx context.Context, ids []string) ([]domain.Outcome, error)
	Close() error
}

// Open creates the source described by cfg
func Open(cfg config.SourceConfig) (Source, error) {
	switch cfg.Kind {
	case config.SourceMemory:
		outcomes, err := LoadFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		return NewMemorySource(outcomes), nil
	case config.SourceSQLite:
		store, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	case config.SourceHTTP:
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		src, err := NewHTTPSource(cfg.URL, timeout)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Kind)
	}
}

// Lookup fetches a single outcome
func Lookup(ctx context.Context, src Source, id string) (domain.Outcome, error) {
	found, err := src.Get(ctx, []string{id})
	if err != nil {
		return domain.Outcome{}, err
	}
	if len(found) == 0 {
		return domain.Outcome{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return found[0], nil
}

// Missing returns the ids that src does not know about
func Missing(ctx context.Context, src Source, ids []string) ([]string, error) {
	found, err := src.Get(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(found))
	for _, o := range found {
		known[o.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func normalize(q Query) Query {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.PageSize <= 0 {
		q.PageSize = 10
	}
	return q
}
