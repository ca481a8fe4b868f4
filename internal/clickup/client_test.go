package clickup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient wires a client against the given handler and records every
// backoff sleep instead of waiting it out.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var sleeps []time.Duration
	c := NewClient("pk_test_token",
		WithBaseURL(srv.URL),
		withSleep(func(d time.Duration) { sleeps = append(sleeps, d) }),
	)
	return c, &sleeps
}

func TestGet_SendsTokenAndAccept(t *testing.T) {
	var gotAuth, gotAccept string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	}))

	_, err := c.get(context.Background(), "/team", nil)
	require.NoError(t, err)
	assert.Equal(t, "pk_test_token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestGet_OmitsEmptyQueryValues(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))

	q := url.Values{}
	q.Set("folder_id", "f1")
	q.Set("list_id", "")
	q.Set("assignee", "")
	_, err := c.get(context.Background(), "/x", q)
	require.NoError(t, err)
	assert.Equal(t, "f1", gotQuery.Get("folder_id"))
	assert.False(t, gotQuery.Has("list_id"))
	assert.False(t, gotQuery.Has("assignee"))
}

func TestGet_RetriesRateLimitWithBackoff(t *testing.T) {
	var requests int
	c, sleeps := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests <= 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"err":"Rate limit reached"}`))
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))

	body, err := c.get(context.Background(), "/team", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, 4, requests)
	assert.Equal(t, []time.Duration{250 * time.Millisecond, 500 * time.Millisecond, time.Second}, *sleeps)
}

func TestGet_ExhaustedRetriesReportUnexpected(t *testing.T) {
	var requests int
	c, sleeps := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.get(context.Background(), "/team", nil)
	require.Error(t, err)
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnexpected, apiErr.Kind)
	assert.Equal(t, "request kept failing after repeated retries", apiErr.Message)
	assert.Equal(t, 4, requests)
	assert.Len(t, *sleeps, 3)
}

func TestGet_UnauthorizedFailsImmediately(t *testing.T) {
	var requests int
	c, sleeps := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.get(context.Background(), "/team", nil)
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnauthorized, apiErr.Kind)
	assert.Equal(t, 1, requests)
	assert.Empty(t, *sleeps)
}

func TestGet_ForbiddenFailsImmediately(t *testing.T) {
	var requests int
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.get(context.Background(), "/team", nil)
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindForbidden, apiErr.Kind)
	assert.Equal(t, 1, requests)
}

func TestGet_ProviderMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"err field", `{"err":"Team not found","ECODE":"TEAM_001"}`, "Team not found"},
		{"message field", `{"message":"Not found"}`, "Not found"},
		{"err wins over message", `{"err":"a","message":"b"}`, "a"},
		{"non-json falls back", `<html>oops</html>`, "request failed with status 404"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tt.body))
			}))
			_, err := c.get(context.Background(), "/x", nil)
			apiErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindAPI, apiErr.Kind)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestGet_NetworkErrorRetries(t *testing.T) {
	c := NewClient("tok",
		WithBaseURL("http://127.0.0.1:1"),
		withSleep(func(time.Duration) {}),
	)
	_, err := c.get(context.Background(), "/team", nil)
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnexpected, apiErr.Kind)
}

func TestRetryDecision(t *testing.T) {
	retriable := &Error{Kind: KindRateLimited}
	fatal := &Error{Kind: KindAPI}

	for attempt, want := range map[int]time.Duration{
		1: 250 * time.Millisecond,
		2: 500 * time.Millisecond,
		3: time.Second,
	} {
		delay, retry := retryDecision(attempt, retriable)
		assert.True(t, retry, "attempt %d", attempt)
		assert.Equal(t, want, delay, "attempt %d", attempt)
	}

	_, retry := retryDecision(maxAttempts, retriable)
	assert.False(t, retry)

	_, retry = retryDecision(1, fatal)
	assert.False(t, retry)
}
