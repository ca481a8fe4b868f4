package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/mkretz/budgetwatch/internal/logging"
	"github.com/mkretz/budgetwatch/internal/model"
)

// Store is the slice of the persistence collaborator the coordinator uses.
type Store interface {
	GetAlerts() ([]model.AlertConfig, error)
	SetAlerts(alerts []model.AlertConfig) ([]model.AlertConfig, error)
	GetToken() (string, error)
}

// ClientFactory builds an API client from the stored credential.
type ClientFactory func(token string) Client

// MsgNoToken is the card message when no credential is configured.
const MsgNoToken = "No API token is configured. Run 'budgetwatch auth' first."

// Coordinator refreshes all persisted alerts in one pass: sequential over
// alerts, membership looked up at most once per team, per-alert failures
// isolated, and the whole updated collection persisted once.
type Coordinator struct {
	store     Store
	newClient ClientFactory
	log       logging.Logger
	now       func() time.Time
}

// NewCoordinator wires a coordinator; log may be nil.
func NewCoordinator(store Store, newClient ClientFactory, log logging.Logger) *Coordinator {
	if log == nil {
		log = logging.Nop{}
	}
	return &Coordinator{store: store, newClient: newClient, log: log, now: time.Now}
}

// RefreshAll refreshes every persisted alert in order and persists the
// merged result with a single SetAlerts call. The refresh itself is total:
// one result per alert, always. Only loading or persisting the collection
// can return an error.
func (c *Coordinator) RefreshAll(ctx context.Context) ([]Result, error) {
	alerts, err := c.store.GetAlerts()
	if err != nil {
		return nil, fmt.Errorf("loading alerts: %w", err)
	}
	model.SortAlerts(alerts)

	results := c.refreshAll(ctx, alerts)

	merged := MergeRefreshed(alerts, results)
	if _, err := c.store.SetAlerts(merged); err != nil {
		return results, fmt.Errorf("persisting refreshed alerts: %w", err)
	}
	return results, nil
}

// RefreshOne refreshes a single alert by id and persists the updated record.
func (c *Coordinator) RefreshOne(ctx context.Context, alertID string) (Result, error) {
	alerts, err := c.store.GetAlerts()
	if err != nil {
		return Result{}, fmt.Errorf("loading alerts: %w", err)
	}

	idx := -1
	for i := range alerts {
		if alerts[i].ID == alertID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Result{}, fmt.Errorf("no alert with id %s", alertID)
	}
	alert := alerts[idx]

	var res Result
	client, setupMsg := c.buildClient()
	if setupMsg != "" {
		res = failed(alert, setupMsg, c.now())
	} else {
		var memberIDs []string
		if alert.Active {
			memberIDs = c.lookupMembers(ctx, client, alert.TeamID, map[string][]string{})
		}
		res = RefreshAlert(ctx, client, alert, Options{TeamMemberIDs: memberIDs, Now: c.now()})
	}

	alerts[idx] = res.Alert
	if _, err := c.store.SetAlerts(alerts); err != nil {
		return res, fmt.Errorf("persisting refreshed alert: %w", err)
	}
	return res, nil
}

// refreshAll runs the per-alert loop. A setup failure before the first
// refresh marks every alert with the same error message instead.
func (c *Coordinator) refreshAll(ctx context.Context, alerts []model.AlertConfig) []Result {
	client, setupMsg := c.buildClient()
	if setupMsg != "" {
		return FailAll(alerts, setupMsg, c.now())
	}

	// Team membership cache, scoped to this batch only.
	members := make(map[string][]string)

	results := make([]Result, 0, len(alerts))
	for _, alert := range alerts {
		var memberIDs []string
		if alert.Active {
			memberIDs = c.lookupMembers(ctx, client, alert.TeamID, members)
		}
		res := RefreshAlert(ctx, client, alert, Options{TeamMemberIDs: memberIDs, Now: c.now()})
		if !res.Success {
			c.log.Warn("alert refresh failed", "alert", alert.ID, "name", alert.Name, "error", res.ErrorMessage)
		}
		results = append(results, res)
	}
	return results
}

func (c *Coordinator) buildClient() (Client, string) {
	token, err := c.store.GetToken()
	if err != nil || token == "" {
		return nil, MsgNoToken
	}
	client := c.newClient(token)
	if client == nil {
		return nil, MsgNoToken
	}
	return client, ""
}

// lookupMembers returns the cached membership of a team, fetching it at most
// once per batch. Lookup failure degrades to an empty member list so one
// inaccessible team cannot abort the batch.
func (c *Coordinator) lookupMembers(ctx context.Context, client Client, teamID string, cache map[string][]string) []string {
	if ids, ok := cache[teamID]; ok {
		return ids
	}
	ids, err := client.GetTeamMemberIDs(ctx, teamID)
	if err != nil {
		c.log.Warn("team membership lookup failed", "team", teamID, "error", err)
		ids = nil
	}
	cache[teamID] = ids
	return ids
}

// FailAll produces one synthetic error result per alert, all carrying the
// same top-level failure message.
func FailAll(alerts []model.AlertConfig, msg string, now time.Time) []Result {
	results := make([]Result, 0, len(alerts))
	for _, a := range alerts {
		results = append(results, failed(a, msg, now))
	}
	return results
}

// MergeRefreshed replaces each original alert with its refreshed counterpart
// by id. Alerts without a matching result pass through unchanged.
func MergeRefreshed(alerts []model.AlertConfig, results []Result) []model.AlertConfig {
	byID := make(map[string]model.AlertConfig, len(results))
	for _, r := range results {
		byID[r.Alert.ID] = r.Alert
	}
	out := make([]model.AlertConfig, 0, len(alerts))
	for _, a := range alerts {
		if updated, ok := byID[a.ID]; ok {
			out = append(out, updated)
		} else {
			out = append(out, a)
		}
	}
	return out
}
