package traffic

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client fetches raw feed bytes from HTTP(S) URLs or local files.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client whose requests time out after timeout. A zero
// timeout leaves requests bounded only by the caller's context.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch returns the body at urlOrPath. Returns nil if urlOrPath is empty
// (allows optional feeds).
func (c *Client) Fetch(ctx context.Context, urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, nil
	}
	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		return os.ReadFile(urlOrPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlOrPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", urlOrPath, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlOrPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, urlOrPath)
	}

	return io.ReadAll(resp.Body)
}

// FetchAll fetches the service alerts, trip updates and JSON status feeds.
// Empty locations are skipped and return nil for that feed.
func (c *Client) FetchAll(ctx context.Context, alertsURL, tripUpdatesURL, statusURL string) ([]byte, []byte, []byte, error) {
	sa, err := c.Fetch(ctx, alertsURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("service alerts: %w", err)
	}

	tu, err := c.Fetch(ctx, tripUpdatesURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("trip updates: %w", err)
	}

	st, err := c.Fetch(ctx, statusURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("status: %w", err)
	}

	return sa, tu, st, nil
}
