// Package registry is the HTTP client for the crates.io API.
//
// Every request waits on a shared rate limiter before it is sent; crates.io
// asks crawlers for at most one request per second. Crate detail lookups are
// cached for a short TTL and concurrent lookups of the same crate share one
// request.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL           = "https://crates.io/api/v1"
	DefaultRequestsPerSecond = 1.0
	DefaultTimeout           = 10 * time.Second
	DefaultCacheTTL          = 5 * time.Minute

	// maxErrorBody caps how much of an error response is kept
	maxErrorBody = 512
)

// Options configure a Client. Zero fields take the defaults above.
type Options struct {
	BaseURL   string
	UserAgent string

	// RequestsPerSecond <= 0 selects the default. Use math.Inf(1) for no limit.
	RequestsPerSecond float64
	Timeout           time.Duration
	CacheTTL          time.Duration

	// HTTPClient overrides the client built from Timeout
	HTTPClient *http.Client
}

// Client talks to the registry. It is safe for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	details   *detailCache
	group     singleflight.Group
}

// StatusError is returned when the registry answers with a non-2xx status
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the registry
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// New creates a client
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "crateview"
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		http:      client,
		limiter:   rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		details:   newDetailCache(opts.CacheTTL),
	}
}

// getJSON waits for the limiter, performs a GET on path and decodes the
// response into out
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			URL:        target,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
