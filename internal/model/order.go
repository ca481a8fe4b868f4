package model

import "sort"

// SortAlerts orders alerts by Order ascending, tie-broken by CreatedAt.
func SortAlerts(alerts []AlertConfig) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Order != alerts[j].Order {
			return alerts[i].Order < alerts[j].Order
		}
		return alerts[i].CreatedAt.Before(alerts[j].CreatedAt)
	})
}

// NormalizeOrder sorts alerts and rewrites Order values so they are
// contiguous from zero. Called after deletions to restore the invariant.
func NormalizeOrder(alerts []AlertConfig) {
	SortAlerts(alerts)
	for i := range alerts {
		alerts[i].Order = i
	}
}
