package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidation marks draft alerts rejected before reaching the network layer.
var ErrValidation = errors.New("invalid alert")

// ValidateAlert checks an alert draft against the schema. It returns an error
// wrapping ErrValidation describing the first violation found.
func ValidateAlert(a *AlertConfig) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
	}

	switch a.ScopeType {
	case ScopeFolder, ScopeList:
	case ScopeCustom:
		if a.CustomScope != ScopeFolder && a.CustomScope != ScopeList {
			return fail("custom scope must be folder or list, got %q", a.CustomScope)
		}
	default:
		return fail("scope type must be folder, list or custom, got %q", a.ScopeType)
	}

	if a.TeamID == "" {
		return fail("workspace id is required")
	}
	switch a.EffectiveScope() {
	case ScopeFolder:
		if a.FolderID == "" {
			return fail("folder id is required for folder-scoped alerts")
		}
	case ScopeList:
		if a.ListID == "" {
			return fail("list id is required for list-scoped alerts")
		}
	}

	switch a.RangeMode {
	case RangeMonthly, RangeNone:
	case RangeCustom:
		for _, d := range []string{a.StartDate, a.EndDate} {
			if d == "" {
				continue // missing bound means unbounded
			}
			if _, err := time.Parse("2006-01-02", d); err != nil {
				return fail("date %q is not in YYYY-MM-DD form", d)
			}
		}
	default:
		return fail("range mode must be monthly, custom or none, got %q", a.RangeMode)
	}

	if a.BudgetHours <= 0 {
		return fail("budget hours must be greater than zero")
	}
	if a.WarningThresholdPct <= 0 || a.CriticalThresholdPct <= 0 {
		return fail("thresholds must be greater than zero")
	}
	if a.WarningThresholdPct > 1000 || a.CriticalThresholdPct > 1000 {
		return fail("thresholds cannot exceed 1000 percent")
	}
	if a.WarningThresholdPct >= a.CriticalThresholdPct {
		return fail("warning threshold (%g) must be below the critical threshold (%g)",
			a.WarningThresholdPct, a.CriticalThresholdPct)
	}
	if a.RefreshFrequencyMinutes < 0 {
		return fail("refresh frequency cannot be negative")
	}
	return nil
}
