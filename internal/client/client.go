// ABOUTME: HTTP client for the résumé service API
// ABOUTME: Attaches the session's bearer token to every request and surfaces failures unchanged

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource yields the current bearer token, if any
type TokenSource interface {
	Token() (string, bool)
}

// Client is the API client for the résumé service backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type options struct {
	transport http.RoundTripper
}

// Option configures a Client
type Option func(*options)

// WithBaseTransport replaces the underlying round tripper. The bearer step still wraps it.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// New creates a client for baseURL whose requests carry the token from tokens.
// There is no client-side timeout; the caller's context bounds each call.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	o := options{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &bearerTransport{tokens: tokens, next: o.transport},
		},
	}
}

// BaseURL returns the configured endpoint
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LoginURL is opened in a browser to start the identity provider flow
func (c *Client) LoginURL() string {
	return c.baseURL + "/auth/login"
}

// Health checks that the backend is reachable. The endpoint needs no session.
func (c *Client) Health(ctx context.Context) error {
	return c.Do(ctx, http.MethodGet, "/health", nil, nil)
}

// ErrorResponse represents an API error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// APIError is returned for any non-2xx response
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Message)
}

// StatusCode extracts the HTTP status from err, or 0 if err is not an APIError
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Do sends one request with an optional JSON body and decodes a JSON response into out.
// A nil out discards the body.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError keeps the cause inspectable while naming what went wrong
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled: %w", ctx.Err())
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out: %w", ctx.Err())
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		apiErr.Message = errResp.Error
		apiErr.Details = errResp.Details
	}
	return apiErr
}

// bearerTransport is the request interceptor: it reads the session on every round trip
type bearerTransport struct {
	tokens TokenSource
	next   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request
	r := req.Clone(req.Context())

	if t.tokens != nil {
		if token, ok := t.tokens.Token(); ok {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if r.Body != nil && r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	r.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := t.next.RoundTrip(r)
	if err != nil {
		slog.Debug("Request failed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		return nil, err
	}

	slog.Debug("Request completed",
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}
