// Package api implements the HTTP client for the marketplace backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/datafoundry/bazaar/internal/common"
	"github.com/datafoundry/bazaar/internal/service"
)

const (
	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 10 * time.Second
	// DefaultRetries is the number of extra attempts after the first failure.
	DefaultRetries = 1
)

// Client is a thin JSON client over the marketplace HTTP contract. All
// requests honor the configured timeout, retry once on transient failures
// with exponential backoff, and surface failures as *Error values.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
	retries    int
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-attempt request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries overrides the number of retry attempts after the first failure.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.retries = n
	}
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		retries: DefaultRetries,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetAuthToken attaches a bearer token to subsequent requests.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// ClearAuthToken removes the bearer token.
func (c *Client) ClearAuthToken() {
	c.authToken = ""
}

// Do issues a request and returns the raw response body. Client errors (4xx)
// are never retried; everything else is retried with exponential backoff
// starting at one second.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var (
		result  []byte
		lastErr error
	)
	operation := func() error {
		data, err := c.doOnce(ctx, method, endpoint, payload)
		if err != nil {
			lastErr = err
			if apiErr, ok := AsError(err); ok && apiErr.IsClientError() {
				return &common.RetryableError{Err: err, Retryable: false}
			}
			return &common.RetryableError{Err: err, Retryable: true}
		}
		result = data
		return nil
	}

	err := common.WithRetry(ctx, operation, service.RetryOptions{
		MaxAttempts:  c.retries + 1,
		InitialDelay: time.Second,
		Multiplier:   2.0,
	})
	if err != nil {
		// Surface the transport error rather than the retry bookkeeping.
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}

	return result, nil
}

func (c *Client) doOnce(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	slog.Debug("Marketplace API request", "method", method, "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError("failed to read response", resp.StatusCode, CodeParseError, nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp.StatusCode, data)
	}

	return data, nil
}

// errorFromResponse builds a typed error from a non-2xx response, pulling
// message and code from the JSON body when one is present.
func errorFromResponse(status int, body []byte) *Error {
	var parsed struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}

	message := fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	code := ""
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		if parsed.Message != "" {
			message = parsed.Message
		}
		code = parsed.Code
	}

	return NewError(message, status, code, body)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, endpoint string) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, endpoint, nil)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, endpoint, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) ([]byte, error) {
	return c.Do(ctx, http.MethodPut, endpoint, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) ([]byte, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, nil)
}

// BuildQuery encodes non-empty parameters as a query string, prefixed with
// "?" when anything survives. Slice values repeat the key.
func BuildQuery(params map[string]any) string {
	values := url.Values{}

	for key, value := range params {
		switch v := value.(type) {
		case nil:
		case string:
			if v != "" {
				values.Add(key, v)
			}
		case []string:
			for _, item := range v {
				if item != "" {
					values.Add(key, item)
				}
			}
		case int:
			if v != 0 {
				values.Add(key, fmt.Sprintf("%d", v))
			}
		case time.Time:
			if !v.IsZero() {
				values.Add(key, v.Format(time.RFC3339))
			}
		default:
			values.Add(key, fmt.Sprintf("%v", v))
		}
	}

	encoded := values.Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}
