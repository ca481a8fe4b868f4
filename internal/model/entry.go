package model

import "encoding/json"

// TimeEntry represents a single logged time record fetched from the provider.
// Entries are ephemeral: they are fetched on every refresh and never persisted.
type TimeEntry struct {
	// ID is the provider-assigned id, or a deterministically derived
	// fallback when the provider omits one.
	ID string `json:"id"`
	// TaskID is empty when the entry is not linked to a task.
	TaskID string `json:"task_id,omitempty"`
	// UserID is the id of the user who logged the time, if known.
	UserID string `json:"user_id,omitempty"`
	// DurationMs is the logged duration in milliseconds, never negative.
	DurationMs int64 `json:"duration_ms"`
	// StartMs and EndMs are epoch milliseconds; nil when not reported.
	StartMs *int64 `json:"start_ms,omitempty"`
	EndMs   *int64 `json:"end_ms,omitempty"`
	// Raw is the original provider payload, kept for traceability.
	Raw json.RawMessage `json:"-"`
}
