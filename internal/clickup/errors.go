package clickup

import (
	"errors"
	"fmt"
)

// ErrorKind classifies API client failures.
type ErrorKind string

const (
	// KindUnauthorized: HTTP 401, the token is invalid. Fatal for the session.
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	// KindForbidden: HTTP 403, a scope or permission issue. Fatal for the request.
	KindForbidden ErrorKind = "FORBIDDEN"
	// KindRateLimited: HTTP 429, retriable with backoff.
	KindRateLimited ErrorKind = "RATE_LIMITED"
	// KindServerError: HTTP 5xx, retriable with backoff.
	KindServerError ErrorKind = "SERVER_ERROR"
	// KindNetwork: transport failure or per-attempt timeout, retriable.
	KindNetwork ErrorKind = "NETWORK"
	// KindAPI: any other non-2xx response, carrying the provider's message.
	KindAPI ErrorKind = "API"
	// KindUnexpected: all retry attempts exhausted without success.
	KindUnexpected ErrorKind = "UNEXPECTED"
)

// Error is a classified API client failure. Message is user-facing.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("clickup: %s (HTTP %d)", e.Message, e.Status)
	}
	return "clickup: " + e.Message
}

// Retriable reports whether the failure may succeed on a later attempt.
func (e *Error) Retriable() bool {
	switch e.Kind {
	case KindRateLimited, KindServerError, KindNetwork:
		return true
	}
	return false
}

// AsError unwraps err into a *Error when it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
