package model

import "time"

// ScopeType selects the container an alert's hours are measured against.
type ScopeType string

const (
	ScopeFolder ScopeType = "folder"
	ScopeList   ScopeType = "list"
	// ScopeCustom defers to AlertConfig.CustomScope for the container kind.
	ScopeCustom ScopeType = "custom"
)

// RangeMode selects how an alert's time window is computed.
type RangeMode string

const (
	RangeMonthly RangeMode = "monthly"
	RangeCustom  RangeMode = "custom"
	RangeNone    RangeMode = "none"
)

// Status is the color-coded state of an evaluated alert.
type Status string

const (
	StatusGreen    Status = "green"
	StatusYellow   Status = "yellow"
	StatusRed      Status = "red"
	StatusInactive Status = "inactive"
	StatusError    Status = "error"
)

// AlertConfig is a budget rule: a scope, a time range, an hour budget, and
// thresholds. The persisted collection is exclusively owned by the storage
// layer; refresh operations work on copies and return updated copies.
type AlertConfig struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ScopeType ScopeType `json:"scope_type"`
	// CustomScope is folder or list; only meaningful when ScopeType is custom.
	CustomScope ScopeType `json:"custom_scope,omitempty"`

	TeamID   string `json:"team_id"`
	FolderID string `json:"folder_id,omitempty"`
	ListID   string `json:"list_id,omitempty"`
	// Cached display names, re-hydrated from the scope tree on refresh.
	TeamName   string `json:"team_name,omitempty"`
	FolderName string `json:"folder_name,omitempty"`
	ListName   string `json:"list_name,omitempty"`

	RangeMode RangeMode `json:"range_mode"`
	// StartDate and EndDate are local calendar dates (2006-01-02) used only
	// when RangeMode is custom. A missing bound makes the range unbounded.
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`

	BudgetHours          float64 `json:"budget_hours"`
	WarningThresholdPct  float64 `json:"warning_threshold_pct"`
	CriticalThresholdPct float64 `json:"critical_threshold_pct"`

	ExcludedTaskIDs    []string `json:"excluded_task_ids,omitempty"`
	IncludeOnlyTaskIDs []string `json:"include_only_task_ids,omitempty"`

	// RefreshFrequencyMinutes of 0 means manual refresh only.
	RefreshFrequencyMinutes int  `json:"refresh_frequency_minutes"`
	Active                  bool `json:"active"`
	// Order is the primary sort key; values among persisted alerts are kept
	// contiguous from zero, tie-broken by CreatedAt.
	Order int `json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LastSnapshot *AlertSnapshot `json:"last_snapshot,omitempty"`
}

// EffectiveScope returns the container kind the alert's time entries are
// scoped by, resolving the custom discriminator.
func (a *AlertConfig) EffectiveScope() ScopeType {
	if a.ScopeType == ScopeCustom {
		return a.CustomScope
	}
	return a.ScopeType
}

// AlertSnapshot is the immutable result of one alert evaluation.
// Exactly one of a normal status or StatusError holds per snapshot; an error
// snapshot carries forward the previous snapshot's numeric fields so the UI
// does not flash to zero on a transient fetch failure.
type AlertSnapshot struct {
	Status         Status    `json:"status"`
	HoursUsed      float64   `json:"hours_used"`
	BudgetHours    float64   `json:"budget_hours"`
	RemainingHours float64   `json:"remaining_hours"`
	OverByHours    float64   `json:"over_by_hours"`
	PercentUsed    float64   `json:"percent_used"`
	EntryCount     int       `json:"entry_count"`
	Timestamp      time.Time `json:"timestamp"`
	ScopeSummary   string    `json:"scope_summary"`
	WarningMessage string    `json:"warning_message,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`
}
