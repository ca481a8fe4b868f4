package budget

import (
	"fmt"
	"math"
	"time"

	"github.com/mkretz/budgetwatch/internal/model"
)

const msPerHour = 3_600_000

// RoundHours rounds to two decimal places with round(x*100)/100 semantics.
// Percentages reuse the same rounding; snapshot consumers rely on the
// resulting 2-decimal precision for both.
func RoundHours(x float64) float64 {
	return math.Round(x*100) / 100
}

// BuildSnapshot evaluates filtered entries against the alert's budget.
// Thresholds are inclusive upward: percent equal to a threshold takes that
// threshold's status.
func BuildSnapshot(alert *model.AlertConfig, entries []model.TimeEntry, warning string, now time.Time) model.AlertSnapshot {
	var totalMs int64
	for _, e := range entries {
		if e.DurationMs > 0 {
			totalMs += e.DurationMs
		}
	}

	hoursUsed := RoundHours(float64(totalMs) / msPerHour)
	var percent float64
	if alert.BudgetHours > 0 {
		percent = RoundHours(hoursUsed / alert.BudgetHours * 100)
	}

	status := model.StatusGreen
	switch {
	case !alert.Active:
		status = model.StatusInactive
	case percent >= alert.CriticalThresholdPct:
		status = model.StatusRed
	case percent >= alert.WarningThresholdPct:
		status = model.StatusYellow
	}

	return model.AlertSnapshot{
		Status:         status,
		HoursUsed:      hoursUsed,
		BudgetHours:    alert.BudgetHours,
		RemainingHours: RoundHours(math.Max(0, alert.BudgetHours-hoursUsed)),
		OverByHours:    RoundHours(math.Max(0, hoursUsed-alert.BudgetHours)),
		PercentUsed:    percent,
		EntryCount:     len(entries),
		Timestamp:      now,
		ScopeSummary:   ScopeSummary(alert),
		WarningMessage: warning,
	}
}

// BuildErrorSnapshot produces an error-status snapshot. Numeric fields carry
// forward from the alert's previous snapshot so a transient fetch failure
// does not flash the display to zero; without a previous snapshot they
// default to the budget and zeros.
func BuildErrorSnapshot(alert *model.AlertConfig, errorMessage string, now time.Time) model.AlertSnapshot {
	snap := model.AlertSnapshot{
		Status:       model.StatusError,
		BudgetHours:  alert.BudgetHours,
		Timestamp:    now,
		ScopeSummary: ScopeSummary(alert),
		ErrorMessage: errorMessage,
	}
	if prev := alert.LastSnapshot; prev != nil {
		snap.HoursUsed = prev.HoursUsed
		snap.BudgetHours = prev.BudgetHours
		snap.RemainingHours = prev.RemainingHours
		snap.OverByHours = prev.OverByHours
		snap.PercentUsed = prev.PercentUsed
		snap.EntryCount = prev.EntryCount
		if prev.ScopeSummary != "" {
			snap.ScopeSummary = prev.ScopeSummary
		}
	}
	return snap
}

// ScopeSummary renders a human-readable description of the alert's scope and
// time range, e.g. `Folder "Backend" – this month`.
func ScopeSummary(alert *model.AlertConfig) string {
	var scope string
	switch alert.EffectiveScope() {
	case model.ScopeFolder:
		scope = fmt.Sprintf("Folder %q", nameOr(alert.FolderName, alert.FolderID))
	case model.ScopeList:
		scope = fmt.Sprintf("List %q", nameOr(alert.ListName, alert.ListID))
	default:
		scope = fmt.Sprintf("Workspace %q", nameOr(alert.TeamName, alert.TeamID))
	}

	switch alert.RangeMode {
	case model.RangeMonthly:
		return scope + " – this month"
	case model.RangeCustom:
		if alert.StartDate != "" && alert.EndDate != "" {
			return fmt.Sprintf("%s – %s to %s", scope, alert.StartDate, alert.EndDate)
		}
		return scope + " – custom range"
	default:
		return scope + " – all time"
	}
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
