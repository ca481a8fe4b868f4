// Package budget holds the pure evaluation functions: time ranges, entry
// filters, and snapshot construction. Nothing in here touches the network.
package budget

import (
	"time"

	"github.com/mkretz/budgetwatch/internal/model"
)

// ComputeTimeRange returns the epoch-millisecond bounds of the alert's
// configured window at the given wall-clock now. Nil bounds mean unbounded.
//
// Monthly spans the local calendar month containing now. Custom spans the
// start-of-day of StartDate through the end-of-day of EndDate in local time;
// a missing bound degrades the whole range to unbounded.
func ComputeTimeRange(alert *model.AlertConfig, now time.Time) (startMs, endMs *int64) {
	switch alert.RangeMode {
	case model.RangeMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
		return msPtr(start), msPtr(end)

	case model.RangeCustom:
		if alert.StartDate == "" || alert.EndDate == "" {
			return nil, nil
		}
		from, err1 := time.ParseInLocation("2006-01-02", alert.StartDate, now.Location())
		to, err2 := time.ParseInLocation("2006-01-02", alert.EndDate, now.Location())
		if err1 != nil || err2 != nil {
			return nil, nil
		}
		end := to.AddDate(0, 0, 1).Add(-time.Millisecond)
		return msPtr(from), msPtr(end)
	}
	return nil, nil
}

func msPtr(t time.Time) *int64 {
	ms := t.UnixMilli()
	return &ms
}
