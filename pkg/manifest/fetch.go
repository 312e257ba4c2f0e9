package manifest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labelforge/tagmatch/pkg/errors"
)

// maxManifestBytes bounds how much of a remote manifest is read.
const maxManifestBytes = 32 << 20 // 32 MiB

// Fetcher retrieves manifests by URL or local file path.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with the given HTTP timeout. A zero timeout
// uses 30 seconds.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch retrieves and parses a manifest. Sources beginning with http:// or
// https:// are fetched over HTTP; anything else is read as a file path.
func (f *Fetcher) Fetch(ctx context.Context, source string) (*Manifest, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return f.fetchURL(ctx, source)
	}
	return f.fetchFile(source)
}

// fetchURL retrieves a manifest document over HTTP.
func (f *Fetcher) fetchURL(ctx context.Context, url string) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewRetrievalError(url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewRetrievalError(url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewRetrievalError(url, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestBytes))
	if err != nil {
		return nil, errors.NewRetrievalError(url, err)
	}

	return Parse(data, url)
}

// fetchFile reads a manifest document from disk.
func (f *Fetcher) fetchFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapRetrieval(path, err)
	}
	return Parse(data, path)
}
