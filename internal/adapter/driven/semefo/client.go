// Package semefo implements the SemefoAPI port over the backend's REST API.
package semefo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SemefoAPI = (*Client)(nil)

// Client implements the driven.SemefoAPI port.
type Client struct {
	http    *http.Client
	baseURL *url.URL
}

// Options tunes the transport stack built by NewClient.
type Options struct {
	// Timeout bounds a whole call; 0 means no timeout.
	Timeout time.Duration
	// RateLimit is the sustained request rate per second; 0 disables limiting.
	RateLimit float64
	// CacheSessions is the number of per-credential caches kept; 0 disables caching.
	CacheSessions int
	// Base is the innermost transport; nil means http.DefaultTransport.
	Base   http.RoundTripper
	Logger *slog.Logger
}

// NewClient creates a backend client with the following transport stack,
// outermost first:
//  1. RequestID (X-Request-ID correlation header)
//  2. BearerToken (Authorization from the session context)
//  3. SessionExpiry (401 → clear session, navigate to login)
//  4. Metrics (Prometheus counters and latency)
//  5. RateLimit (token bucket, optional)
//  6. Cache (per-credential httpcache, optional)
func NewClient(baseURL string, session driven.SessionContext, nav driven.Navigator, opts Options) (*Client, error) {
	mws := []Middleware{
		RequestID(),
		BearerToken(session),
		SessionExpiry(session, nav, LoginPath, opts.Logger),
		Metrics(),
	}

	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		mws = append(mws, RateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), burst)))
	}

	if opts.CacheSessions > 0 {
		cache, err := Cache(opts.CacheSessions)
		if err != nil {
			return nil, err
		}
		mws = append(mws, cache)
	}

	httpClient := &http.Client{
		Transport: Chain(opts.Base, mws...),
		Timeout:   opts.Timeout,
	}

	return NewClientWithHTTPClient(httpClient, baseURL)
}

// NewProxyTransport returns the transport for calls forwarded to the backend
// on behalf of a stored session: RequestID, BearerToken, SessionExpiry and
// Metrics over base. Caching and rate limiting are left to the caller.
func NewProxyTransport(session driven.SessionContext, nav driven.Navigator, base http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	return Chain(base,
		RequestID(),
		BearerToken(session),
		SessionExpiry(session, nav, LoginPath, logger),
		Metrics(),
	)
}

// NewClientWithHTTPClient creates a Client that sends every call through
// httpClient unchanged. Tests use it to install a bare httptest transport.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	return &Client{http: httpClient, baseURL: u}, nil
}

// Login exchanges dashboard credentials for an access token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/dashboard/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do sends one JSON call. body and out may be nil. Transport failures are
// wrapped, non-2xx statuses become *APIError, and nothing is retried.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	slog.Debug("semefo api call", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, method, path)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}
