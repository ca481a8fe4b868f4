package clickup

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/mkretz/budgetwatch/internal/model"
)

// maxPagesPerScan caps a single assignee scan regardless of what pagination
// signal the provider keeps sending.
const maxPagesPerScan = 200

// unassignedMarker is the provider's assignee value for unassigned entries.
const unassignedMarker = "0"

// TimeEntryParams scope a time-entries query.
type TimeEntryParams struct {
	TeamID  string
	StartMs *int64
	EndMs   *int64
	// FolderID or ListID narrows the query to one container; at most one of
	// the two is expected to be set.
	FolderID string
	ListID   string
	// AssigneeIDs restricts the fetch to the given users. The provider omits
	// records from combined assignee queries, so the fetch fans out to one
	// scan per assignee, plus an unassigned scan and an unfiltered scan.
	AssigneeIDs []string
}

// GetTimeEntries fetches all time entries matching the params, merging the
// per-assignee scans and deduplicating entries by their stable identity.
func (c *Client) GetTimeEntries(ctx context.Context, p TimeEntryParams) ([]model.TimeEntry, error) {
	seen := make(map[string]bool)
	var out []model.TimeEntry
	for _, assignee := range assigneeScans(p.AssigneeIDs) {
		entries, err := c.scanTimeEntries(ctx, p, assignee)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			out = append(out, e)
		}
	}
	return out, nil
}

// assigneeScans returns the assignee query values to fan out over: every
// distinct configured assignee, then the unassigned marker, then "" for an
// unfiltered scan. Without an assignee filter only the unfiltered scan runs.
func assigneeScans(ids []string) []string {
	if len(ids) == 0 {
		return []string{""}
	}
	seen := make(map[string]bool)
	var scans []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		scans = append(scans, id)
	}
	return append(scans, unassignedMarker, "")
}

// scanTimeEntries walks all pages of one assignee-scoped query. Pages are
// fetched sequentially: the continuation signal is only known after the
// previous response.
func (c *Client) scanTimeEntries(ctx context.Context, p TimeEntryParams, assignee string) ([]model.TimeEntry, error) {
	var (
		out    []model.TimeEntry
		cursor string
		page   int
	)
	for i := 0; i < maxPagesPerScan; i++ {
		q := url.Values{"include_task_tags": {"true"}}
		if p.StartMs != nil {
			q.Set("start_date", strconv.FormatInt(*p.StartMs, 10))
		}
		if p.EndMs != nil {
			q.Set("end_date", strconv.FormatInt(*p.EndMs, 10))
		}
		q.Set("folder_id", p.FolderID)
		q.Set("list_id", p.ListID)
		q.Set("assignee", assignee)
		if cursor != "" {
			q.Set("cursor", cursor)
		} else {
			q.Set("page", strconv.Itoa(page))
		}

		body, err := c.get(ctx, "/team/"+p.TeamID+"/time_entries", q)
		if err != nil {
			return nil, err
		}
		signals, entries := parseTimeEntriesPage(body)
		out = append(out, entries...)

		next := decodeCursor(signals, page)
		switch next.kind {
		case cursorExhausted:
			return out, nil
		case cursorToken:
			cursor = next.token
		case cursorPageNumber, cursorLastPageCount:
			cursor = ""
			page = next.nextPage
		}
	}
	return out, nil
}

// timeEntryPayload is the loosely typed provider shape of one time entry.
type timeEntryPayload struct {
	ID   flexString `json:"id"`
	Task struct {
		ID flexString `json:"id"`
	} `json:"task"`
	User struct {
		ID flexString `json:"id"`
	} `json:"user"`
	Duration flexInt `json:"duration"`
	Start    flexInt `json:"start"`
	End      flexInt `json:"end"`
}

// parseTimeEntriesPage normalizes one page response into internal entries
// plus its pagination signals. Malformed records are dropped, never fatal.
func parseTimeEntriesPage(body []byte) (pageSignals, []model.TimeEntry) {
	var envelope struct {
		pageSignals
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return pageSignals{}, nil
	}

	var entries []model.TimeEntry
	for _, raw := range envelope.Data {
		var p timeEntryPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		e := model.TimeEntry{
			ID:     string(p.ID),
			TaskID: string(p.Task.ID),
			UserID: string(p.User.ID),
			Raw:    raw,
		}
		if p.Duration.OK && p.Duration.Val > 0 {
			e.DurationMs = p.Duration.Val
		}
		if p.Start.OK {
			v := p.Start.Val
			e.StartMs = &v
		}
		if p.End.OK {
			v := p.End.Val
			e.EndMs = &v
		}
		if e.ID == "" {
			e.ID = derivedEntryID(e)
		}
		entries = append(entries, e)
	}
	return envelope.pageSignals, entries
}

// derivedEntryID builds a stable identity for entries the provider returned
// without an id, so the same record seen in two assignee scans merges to one.
func derivedEntryID(e model.TimeEntry) string {
	start, end := "-", "-"
	if e.StartMs != nil {
		start = strconv.FormatInt(*e.StartMs, 10)
	}
	if e.EndMs != nil {
		end = strconv.FormatInt(*e.EndMs, 10)
	}
	return strings.Join([]string{
		"derived", e.TaskID, e.UserID, start, end, strconv.FormatInt(e.DurationMs, 10),
	}, ":")
}
