// Package clickup implements the authenticated read client for the
// ClickUp-style time-tracking API: bounded retries with exponential backoff,
// structured failure classification, and defensive payload parsing.
package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mkretz/budgetwatch/internal/logging"
)

const (
	// DefaultBaseURL is the production API root; override via WithBaseURL.
	DefaultBaseURL = "https://api.clickup.com/api/v2"

	// requestTimeout bounds a single HTTP attempt, not a whole operation.
	requestTimeout = 15 * time.Second
)

// Client is an authenticated API client. Safe for sequential use; callers
// are expected to bound their own concurrency against the provider's rate
// limits.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	sleep      func(time.Duration)
	log        logging.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. for test servers.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger attaches a structured logger for retry warnings.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// withSleep replaces the backoff sleep function. Tests use this to observe
// delays without waiting.
func withSleep(fn func(time.Duration)) Option {
	return func(c *Client) { c.sleep = fn }
}

// NewClient creates a client authenticating with the given bearer token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: &http.Client{},
		sleep:      time.Sleep,
		log:        logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues an authenticated GET with bounded retries and returns the raw
// response body. Empty query values are omitted from the URL.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if enc := encodeQuery(query); enc != "" {
		u += "?" + enc
	}

	for attempt := 1; ; attempt++ {
		body, apiErr := c.doAttempt(ctx, u)
		if apiErr == nil {
			return body, nil
		}

		delay, retry := retryDecision(attempt, apiErr)
		if !retry {
			if apiErr.Retriable() {
				// Retriable failure on the final attempt.
				return nil, &Error{
					Kind:    KindUnexpected,
					Status:  apiErr.Status,
					Message: "request kept failing after repeated retries",
				}
			}
			return nil, apiErr
		}

		c.log.Warn("retrying request",
			"path", path, "attempt", attempt, "status", apiErr.Status, "delay", delay)
		c.sleep(delay)
	}
}

// doAttempt performs one HTTP attempt and classifies its outcome.
func (c *Client) doAttempt(ctx context.Context, u string) ([]byte, *Error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "building request: " + err.Error()}
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts surface here too and count as retriable network failures.
		return nil, &Error{Kind: KindNetwork, Message: "network error: " + err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "reading response: " + err.Error()}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &Error{Kind: KindUnauthorized, Status: resp.StatusCode,
			Message: "authentication failed: the API token is invalid or expired"}
	case resp.StatusCode == http.StatusForbidden:
		return nil, &Error{Kind: KindForbidden, Status: resp.StatusCode,
			Message: "access denied: the token does not grant access to this resource"}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &Error{Kind: KindRateLimited, Status: resp.StatusCode,
			Message: providerMessage(body, "rate limit exceeded")}
	case resp.StatusCode >= 500:
		return nil, &Error{Kind: KindServerError, Status: resp.StatusCode,
			Message: providerMessage(body, "provider server error")}
	default:
		return nil, &Error{Kind: KindAPI, Status: resp.StatusCode,
			Message: providerMessage(body, fmt.Sprintf("request failed with status %d", resp.StatusCode))}
	}
}

// providerMessage extracts the provider's error message from a JSON body
// field named either "err" or "message", falling back to the given text.
func providerMessage(body []byte, fallback string) string {
	var payload struct {
		Err     string `json:"err"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Err != "" {
			return payload.Err
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fallback
}

// encodeQuery encodes query parameters, dropping empty values entirely.
func encodeQuery(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	clean := url.Values{}
	for k, vals := range q {
		for _, v := range vals {
			if v != "" {
				clean.Add(k, v)
			}
		}
	}
	return clean.Encode()
}
