package budget

import (
	"strings"

	"github.com/mkretz/budgetwatch/internal/model"
)

// NormalizeTaskIDSet trims whitespace, drops empty values and deduplicates
// while keeping first-seen order. The operation is idempotent.
func NormalizeTaskIDSet(ids []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ApplyEntryFilters drops entries excluded by the alert's task-id filters.
// An entry without a task id is kept only when no include-only set is
// configured, since it cannot be matched against one.
func ApplyEntryFilters(alert *model.AlertConfig, entries []model.TimeEntry) []model.TimeEntry {
	excluded := toSet(NormalizeTaskIDSet(alert.ExcludedTaskIDs))
	includeOnly := toSet(NormalizeTaskIDSet(alert.IncludeOnlyTaskIDs))

	out := make([]model.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.TaskID == "" {
			if len(includeOnly) == 0 {
				out = append(out, e)
			}
			continue
		}
		if excluded[e.TaskID] {
			continue
		}
		if len(includeOnly) > 0 && !includeOnly[e.TaskID] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
