package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single document download.
const DefaultTimeout = 60 * time.Second

type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// NewFetcherWithClient uses the given client, for tests and custom transports.
func NewFetcherWithClient(c *http.Client) *Fetcher {
	return &Fetcher{client: c}
}

// GetDocument downloads a document (HTML export, PDF or exported JSON). Anything but 200 OK is
// an error; there are no retries.
func (f *Fetcher) GetDocument(url string) ([]byte, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch document, status code: %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return bodyBytes, nil
}
