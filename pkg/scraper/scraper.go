// Package scraper fetches sports-reference pages over HTTP or from disk
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/myusername/cbb-statistic-scraper/internal/logging"
)

// DefaultUserAgent is sent when no user agent is configured
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// ErrBlocked means the site refused the request (403 or 429). A run that hits it
// should stop rather than keep hammering the site.
var ErrBlocked = errors.New("blocked by remote site: save the page HTML in a browser, then " +
	"parse it with `ratings --from-file`, or for team runs place it in html_cache_dir under its cache file name")

// FetchError is a per-page fetch failure: a non-success status, a timeout or a
// transport error. Status is zero when no response was received.
type FetchError struct {
	URL    string
	Status int
	Reason string
}

func (e *FetchError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
	}
	return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.Status, e.Reason)
}

// Fetcher returns the HTML body of a page
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches pages with browser-like headers
type HTTPFetcher struct {
	client *resty.Client
	logger *logging.Logger
}

// NewHTTPFetcher creates a fetcher with the given user agent and timeout
func NewHTTPFetcher(userAgent string, timeout time.Duration, logger *logging.Logger) *HTTPFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"User-Agent":      userAgent,
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		})
	return &HTTPFetcher{client: client, logger: logger}
}

// Fetch downloads the HTML content from a URL and returns it as a string
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.logger.Debug("fetching URL", "url", url)

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", &FetchError{URL: url, Reason: err.Error()}
	}

	status := resp.StatusCode()
	f.logger.Debug("fetched URL", "url", url, "status", status, "bytes", len(resp.Body()))

	switch {
	case status == http.StatusForbidden || status == http.StatusTooManyRequests:
		return "", errors.Mark(&FetchError{URL: url, Status: status, Reason: http.StatusText(status)}, ErrBlocked)
	case status != http.StatusOK:
		return "", &FetchError{URL: url, Status: status, Reason: http.StatusText(status)}
	}
	return resp.String(), nil
}
