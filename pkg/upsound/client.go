// Package upsound is the HTTP client for the Upsound studio catalog.
package upsound

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the production catalog origin.
	DefaultBaseURL = "https://www.upsound.com"

	// acceptLanguage is sent on every outbound request.
	acceptLanguage = "en-US,en;q=0.9"

	// maxBodySize limits response bodies to 5MB to prevent abuse.
	maxBodySize = 5 * 1024 * 1024
)

// TransportError reports a failed upstream call: the request itself failed,
// the origin answered with a non-success status, or the body could not be
// decoded as the expected content type.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Client issues GET requests against the catalog origin with a fixed
// identifying header set. It never retries.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// URL joins a path+query string to the catalog origin.
func (c *Client) URL(pathAndQuery string) string {
	return c.baseURL + pathAndQuery
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

// FetchText fetches url and returns the body as a string.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	buf, err := c.get(ctx, url)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	return string(buf), nil
}

// FetchJSON fetches url and decodes the body as JSON.
func (c *Client) FetchJSON(ctx context.Context, url string) (any, error) {
	buf, err := c.get(ctx, url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	var v any
	if err := json.Unmarshal(buf, &v); err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("decoding response from %s: %w", url, err)}
	}
	return v, nil
}
