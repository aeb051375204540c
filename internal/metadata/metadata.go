// Package metadata queries the local compute metadata server for the cloud
// project identity. Lookups are best effort: the resolver treats any failure
// as "no project id available".
package metadata

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "http://metadata.google.internal"
	projectIDPath  = "/computeMetadata/v1/project/project-id"

	flavorHeader = "Metadata-Flavor"
	flavorValue  = "Google"

	// lookupTimeout bounds both the connection attempt and the wait for
	// response headers so resolution never stalls on a missing server.
	lookupTimeout = 100 * time.Millisecond
)

// Client performs metadata-server lookups.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different server (primarily for tests).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client with the production endpoint and short timeouts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: lookupTimeout}).DialContext,
				ResponseHeaderTimeout: lookupTimeout,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProjectID fetches the numeric-or-named project identifier. Any transport
// failure or non-200 status is returned as an error for the caller to ignore.
func (c *Client) ProjectID(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+projectIDPath, nil)
	if err != nil {
		return "", fmt.Errorf("build metadata request: %w", err)
	}
	req.Header.Set(flavorHeader, flavorValue)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("query metadata server: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("metadata server returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read metadata response: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}
