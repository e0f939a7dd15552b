// Package httpfetch downloads raw page bodies for URLs quoted in user input.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kailas-cloud/assessrec/internal/domain"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 2 << 20
	DefaultUserAgent    = "assessrec/1.0"
)

// Config holds fetcher settings.
type Config struct {
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string
	// HTTPClient overrides the underlying client (tests).
	HTTPClient *http.Client
}

// Client fetches a URL and returns its body as text. One attempt, no retries.
type Client struct {
	http      *http.Client
	timeout   time.Duration
	maxBody   int64
	userAgent string
}

// New creates a fetch client.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		http:      hc,
		timeout:   cfg.Timeout,
		maxBody:   cfg.MaxBodyBytes,
		userAgent: cfg.UserAgent,
	}
}

// Fetch returns the response body of a GET request.
// Non-2xx statuses, transport errors and timeouts wrap domain.ErrFetchFailed.
// Bodies longer than the configured cap are truncated.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %v: %w", err, domain.ErrFetchFailed)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,text/plain,*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %v: %w", url, err, domain.ErrFetchFailed)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("get %s: status %d: %w", url, resp.StatusCode, domain.ErrFetchFailed)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return "", fmt.Errorf("read %s: %v: %w", url, err, domain.ErrFetchFailed)
	}
	return string(body), nil
}
