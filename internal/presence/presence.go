// Package presence fetches the site owner's online status from a
// third-party status API, read-only, for the badge on the public site.
package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const defaultTTL = 60 * time.Second

// Client polls a status endpoint and caches the answer briefly so every
// page view does not hit the upstream API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	ttl        time.Duration

	mu        sync.Mutex
	cached    string
	fetchedAt time.Time
}

// NewClient creates a presence client for the given endpoint. An empty
// endpoint disables the badge; Status then always reports "offline".
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		ttl:        defaultTTL,
	}
}

// Status returns the current status string. Upstream failures degrade to
// "offline" rather than erroring: the badge is cosmetic. A nil client
// always reports "offline".
func (c *Client) Status(ctx context.Context) string {
	if c == nil || c.endpoint == "" {
		return "offline"
	}

	c.mu.Lock()
	if time.Since(c.fetchedAt) < c.ttl && c.cached != "" {
		cached := c.cached
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	status, err := c.fetch(ctx)
	if err != nil {
		status = "offline"
	}

	c.mu.Lock()
	c.cached = status
	c.fetchedAt = time.Now()
	c.mu.Unlock()
	return status
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode status: %w", err)
	}
	if payload.Status == "" {
		return "", fmt.Errorf("status endpoint returned empty status")
	}
	return payload.Status, nil
}
