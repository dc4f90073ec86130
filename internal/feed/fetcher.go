package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "mta-mcp/1.0"

// maxFeedBytes caps a realtime payload
const maxFeedBytes = 16 << 20

// Fetcher downloads raw GTFS-realtime protobuf payloads
type Fetcher struct {
	apiKey     string
	httpClient *http.Client
}

// NewFetcher creates a fetcher. An empty apiKey sends no x-api-key header.
func NewFetcher(apiKey string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewFetcherWithClient creates a fetcher around an existing client
func NewFetcherWithClient(apiKey string, client *http.Client) *Fetcher {
	return &Fetcher{apiKey: apiKey, httpClient: client}
}

// HTTPClient returns the underlying client
func (f *Fetcher) HTTPClient() *http.Client {
	return f.httpClient
}

// Fetch returns the body of a feed URL
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.apiKey != "" {
		req.Header.Set("x-api-key", f.apiKey)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	if len(data) > maxFeedBytes {
		return nil, fmt.Errorf("feed from %s exceeds %d bytes", url, maxFeedBytes)
	}
	return data, nil
}
