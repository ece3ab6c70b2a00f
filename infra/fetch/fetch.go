package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxDocumentBytes caps the size of a fetched requirements document.
const maxDocumentBytes = 1 << 20

// Fetcher retrieves requirements documents over HTTP.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher with the given timeout. A zero timeout defaults to
// ten seconds.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Document fetches the document at url and returns its body as text.
func (f *Fetcher) Document(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch document: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch document: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return "", fmt.Errorf("fetch document: %w", err)
	}
	return string(body), nil
}
