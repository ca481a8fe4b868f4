// Package refresh drives alert evaluation: a per-alert orchestrator and a
// batch coordinator that isolates failures across independently-configured
// alerts. Both entry points are total functions; they report failures as
// error snapshots instead of propagating them.
package refresh

import (
	"context"
	"time"

	"github.com/mkretz/budgetwatch/internal/budget"
	"github.com/mkretz/budgetwatch/internal/clickup"
	"github.com/mkretz/budgetwatch/internal/model"
)

// Client is the slice of the API client the refresh pipeline needs.
type Client interface {
	GetScopeTree(ctx context.Context) (*model.ScopeTree, error)
	GetTeamMemberIDs(ctx context.Context, teamID string) ([]string, error)
	GetTimeEntries(ctx context.Context, p clickup.TimeEntryParams) ([]model.TimeEntry, error)
}

// Scope-validation messages shown on alert cards.
const (
	msgWorkspaceMissing = "Selected workspace is no longer accessible."
	msgFolderMissing    = "Selected folder is missing or inaccessible."
	msgListMissing      = "Selected list is missing or inaccessible."

	msgGenericFailure = "Something went wrong while refreshing this alert."
)

// Options carry caller-provided context for one refresh.
type Options struct {
	// ScopeTree, when non-nil, is used instead of fetching a fresh one.
	ScopeTree *model.ScopeTree
	// TeamMemberIDs is the cached membership of the alert's team, used as
	// the assignee fan-out filter. Fetching and caching it is the batch
	// coordinator's responsibility, never the orchestrator's.
	TeamMemberIDs []string
	// Now pins the evaluation clock; the zero value means time.Now().
	Now time.Time
}

// Result is the outcome of one refresh. Alert always carries the updated
// record, error snapshot included, so the caller can persist it either way.
type Result struct {
	Success      bool
	Alert        model.AlertConfig
	ErrorMessage string
}

// RefreshAlert runs one alert through the refresh state machine: inactive
// short-circuit, scope validation, entry fetch, filtering, snapshot. Any
// failure is converted into an error snapshot on the returned alert.
func RefreshAlert(ctx context.Context, client Client, alert model.AlertConfig, opts Options) Result {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	if !alert.Active {
		// No network call for disabled alerts.
		return succeeded(alert, nil, now)
	}

	tree := opts.ScopeTree
	if tree == nil {
		t, err := client.GetScopeTree(ctx)
		if err != nil {
			return failed(alert, userMessage(err), now)
		}
		tree = t
	}

	if msg := validateScope(tree, &alert); msg != "" {
		return failed(alert, msg, now)
	}
	hydrateNames(tree, &alert)

	startMs, endMs := budget.ComputeTimeRange(&alert, now)
	params := clickup.TimeEntryParams{
		TeamID:      alert.TeamID,
		StartMs:     startMs,
		EndMs:       endMs,
		AssigneeIDs: opts.TeamMemberIDs,
	}
	switch alert.EffectiveScope() {
	case model.ScopeFolder:
		params.FolderID = alert.FolderID
	case model.ScopeList:
		params.ListID = alert.ListID
	}

	entries, err := client.GetTimeEntries(ctx, params)
	if err != nil {
		return failed(alert, userMessage(err), now)
	}

	return succeeded(alert, budget.ApplyEntryFilters(&alert, entries), now)
}

func succeeded(alert model.AlertConfig, filtered []model.TimeEntry, now time.Time) Result {
	// A successful refresh also normalizes the stored filter sets.
	alert.ExcludedTaskIDs = budget.NormalizeTaskIDSet(alert.ExcludedTaskIDs)
	alert.IncludeOnlyTaskIDs = budget.NormalizeTaskIDSet(alert.IncludeOnlyTaskIDs)

	snap := budget.BuildSnapshot(&alert, filtered, "", now)
	alert.LastSnapshot = &snap
	alert.UpdatedAt = now
	return Result{Success: true, Alert: alert}
}

func failed(alert model.AlertConfig, msg string, now time.Time) Result {
	snap := budget.BuildErrorSnapshot(&alert, msg, now)
	alert.LastSnapshot = &snap
	alert.UpdatedAt = now
	return Result{Success: false, Alert: alert, ErrorMessage: msg}
}

// validateScope checks the alert's configured containers still exist in the
// tree and returns the card message when one is gone.
func validateScope(tree *model.ScopeTree, alert *model.AlertConfig) string {
	team := tree.FindTeam(alert.TeamID)
	if team == nil {
		return msgWorkspaceMissing
	}
	switch alert.EffectiveScope() {
	case model.ScopeFolder:
		if team.FindFolder(alert.FolderID) == nil {
			return msgFolderMissing
		}
	case model.ScopeList:
		if team.FindList(alert.ListID) == nil {
			return msgListMissing
		}
	}
	return ""
}

// hydrateNames refreshes the cached display names from the scope tree.
func hydrateNames(tree *model.ScopeTree, alert *model.AlertConfig) {
	team := tree.FindTeam(alert.TeamID)
	if team == nil {
		return
	}
	if team.Name != "" {
		alert.TeamName = team.Name
	}
	if f := team.FindFolder(alert.FolderID); f != nil && f.Name != "" {
		alert.FolderName = f.Name
	}
	if l := team.FindList(alert.ListID); l != nil && l.Name != "" {
		alert.ListName = l.Name
	}
}

// userMessage maps an error to the card text: API client errors keep their
// provider-specific message, everything else gets the generic fallback.
func userMessage(err error) string {
	if apiErr, ok := clickup.AsError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return msgGenericFailure
}
