package textpipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// ErrTooManyRedirects is returned when the redirect hop limit is exceeded.
var ErrTooManyRedirects = errors.New("too many redirects")

// RedirectPolicy returns a CheckRedirect function that follows redirects
// until maxHops is reached, then returns ErrTooManyRedirects. maxHops <= 0
// places no limit on the number of redirects followed.
func RedirectPolicy(maxHops int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if maxHops > 0 && len(via) >= maxHops {
			return ErrTooManyRedirects
		}
		return nil
	}
}

// Fetcher performs HTTP GETs against candidate crawl URLs.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher builds a Fetcher that sends requests through client (which
// carries any timeout and redirect policy) with the given User-Agent string.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{client: client, userAgent: userAgent}
}

// Result is the outcome of fetching one URL.
type Result struct {
	Body       []byte
	StatusCode int
	FinalURL   string
	Header     http.Header
}

// Fetch performs an HTTP GET for rawURL, returning the response body
// (capped at 10MB), status code, and the final URL after redirects.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Result{
		Body:       body,
		StatusCode: resp.StatusCode,
		FinalURL:   finalURL,
		Header:     resp.Header,
	}, nil
}
