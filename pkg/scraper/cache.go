package scraper

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/myusername/cbb-statistic-scraper/internal/logging"
)

// CachedFetcher keeps a copy of every fetched page in Dir and serves later
// requests for the same URL from disk.
type CachedFetcher struct {
	Next   Fetcher
	Dir    string
	Logger *logging.Logger
}

// Fetch returns the cached page for url, fetching and saving it on a miss
func (c *CachedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	path := filepath.Join(c.Dir, CacheFileName(rawURL))

	if data, err := os.ReadFile(path); err == nil {
		c.Logger.Debug("using cached page", "url", rawURL, "path", path)
		return string(data), nil
	}

	content, err := c.Next.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if err := SaveContentToFile(path, content); err != nil {
		// a cache write failure never fails the fetch
		c.Logger.Warn("failed to cache page", "url", rawURL, "path", path, "error", err)
	}
	return content, nil
}

// CacheFileName maps a page URL to a flat file name, e.g.
// https://www.sports-reference.com/cbb/schools/duke/men/2026.html becomes
// cbb_schools_duke_men_2026.html
func CacheFileName(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	name := strings.ReplaceAll(strings.Trim(p, "/"), "/", "_")
	if name == "" {
		name = "index"
	}
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}
	return name
}

// SaveContentToFile saves content to a file, creating its directory
func SaveContentToFile(filename string, content string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", filename)
	}
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	return nil
}

// FileFetcher ignores the URL and always returns the contents of Path. It backs
// --from-file runs against a page saved from a browser.
type FileFetcher struct {
	Path string
}

// Fetch reads the saved page
func (f FileFetcher) Fetch(_ context.Context, _ string) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", errors.Wrapf(err, "read saved page %s", f.Path)
	}
	return string(data), nil
}
