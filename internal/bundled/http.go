package bundled

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPSource fetches examples from <baseURL>/<file>.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) { s.client.Timeout = d }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// NewHTTPSource creates a source rooted at baseURL.
func NewHTTPSource(baseURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the location of the example.
func (s *HTTPSource) URL(ex Example) string {
	return s.baseURL + "/" + ex.File
}

// Fetch GETs the example. Any status other than 200 is a *FetchError.
func (s *HTTPSource) Fetch(ctx context.Context, ex Example) ([]byte, error) {
	url := s.URL(ex)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{ID: ex.ID, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{ID: ex.ID, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			ID:         ex.ID,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d for %s", resp.StatusCode, url),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{ID: ex.ID, Err: err}
	}
	return data, nil
}
