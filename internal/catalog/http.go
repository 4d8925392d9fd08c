package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"outcomepicker/internal/domain"
)

// StatusError is returned when the outcome service answers with a non-2xx status
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("outcome service returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("outcome service returned %d: %s", e.Code, e.Body)
}

// HTTPSource queries a remote outcome service:
//
//	GET {base}/outcomes?q=&page=&per_page=   -> {"entries": [...], "total": N}
//	GET {base}/outcomes?ids=a,b              -> {"entries": [...]}
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates a source for the service at baseURL
func NewHTTPSource(baseURL string, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse source url: unsupported scheme %q", u.Scheme)
	}
	return &HTTPSource{
		base:   u,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Search fetches one page of results
func (s *HTTPSource) Search(ctx context.Context, q Query) (domain.ResultPage, error) {
	q = normalize(q)
	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("per_page", strconv.Itoa(q.PageSize))

	var page domain.ResultPage
	if err := s.get(ctx, params, &page); err != nil {
		return domain.ResultPage{}, err
	}
	return page, nil
}

// Get fetches outcomes by id
func (s *HTTPSource) Get(ctx context.Context, ids []string) ([]domain.Outcome, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))

	var page domain.ResultPage
	if err := s.get(ctx, params, &page); err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Outcome, len(page.Entries))
	for _, o := range page.Entries {
		byID[o.ID] = o
	}
	ordered := make([]domain.Outcome, 0, len(page.Entries))
	for _, id := range ids {
		if o, ok := byID[id]; ok {
			ordered = append(ordered, o)
		}
	}
	return ordered, nil
}

// Close releases idle connections
func (s *HTTPSource) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

func (s *HTTPSource) get(ctx context.Context, params url.Values, out any) error {
	endpoint := s.base.JoinPath("outcomes")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("query outcome service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode outcome service response: %w", err)
	}
	return nil
}
