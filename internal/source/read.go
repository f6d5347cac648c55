package source

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rancher-sandbox/i18n-lint/internal/catalog"
	"github.com/rancher-sandbox/i18n-lint/internal/usage"
)

// ReadViews reads every view file.
func ReadViews(paths []string) ([]usage.File, error) {
	files := make([]usage.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read view: %w", err)
		}
		files = append(files, usage.File{Path: p, Content: string(data)})
	}
	return files, nil
}

// ReadCatalogs reads every locale file. The format follows the extension.
func ReadCatalogs(paths []string) ([]catalog.Source, error) {
	sources := make([]catalog.Source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read locale: %w", err)
		}
		sources = append(sources, catalog.Source{
			ID:     p,
			Data:   data,
			Format: catalog.FormatFromPath(p),
			Origin: catalog.FromFile,
		})
	}
	return sources, nil
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetcher downloads catalog documents.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("Accept", "application/json, application/yaml, text/yaml, */*"),
	}
}

// Fetch downloads the catalog at rawURL into an inline source. The format
// follows the URL path extension, defaulting to JSON.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (catalog.Source, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return catalog.Source{}, fmt.Errorf("bad catalog url %q: %w", rawURL, err)
	}
	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return catalog.Source{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if resp.IsError() {
		return catalog.Source{}, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode())
	}
	return catalog.Source{
		ID:     rawURL,
		Data:   resp.Body(),
		Format: catalog.FormatFromPath(path.Base(u.Path)),
		Origin: catalog.FromURL,
	}, nil
}
