package clickup

import "time"

const (
	// maxAttempts bounds one logical request to 4 HTTP attempts in total.
	maxAttempts = 4
	baseBackoff = 250 * time.Millisecond
)

// backoffDelay returns the wait before the next attempt:
// 250ms × 2^(attempt-1), so 250, 500, 1000ms for attempts 1–3.
func backoffDelay(attempt int) time.Duration {
	return baseBackoff << (attempt - 1)
}

// retryDecision is the pure retry policy: given the attempt number that just
// failed and its classified error, it reports whether to retry and after how
// long. It never sleeps or touches the network.
func retryDecision(attempt int, err *Error) (time.Duration, bool) {
	if attempt >= maxAttempts {
		return 0, false
	}
	if !err.Retriable() {
		return 0, false
	}
	return backoffDelay(attempt), true
}
