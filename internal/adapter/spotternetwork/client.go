// Package spotternetwork fetches the SpotterNetwork plain-text report feed.
package spotternetwork

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/spotter-report-loader/internal/config"
)

// Client fetches the report feed over HTTP. It implements pipeline.Fetcher.
type Client struct {
	httpClient *http.Client
	url        string
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a feed client with the configured URL, User-Agent, and
// request timeout.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.FeedTimeout},
		url:        cfg.FeedURL,
		userAgent:  cfg.FeedUserAgent,
		logger:     logger,
	}
}

// Fetch returns the full current feed body. The provider requires an
// identifying User-Agent on every request. Any non-200 status is an error;
// retry policy belongs to the poll loop.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch reports: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("feed returned unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read feed body: %w", err)
	}

	return string(body), nil
}
