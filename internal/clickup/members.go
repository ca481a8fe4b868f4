package clickup

import (
	"context"
	"encoding/json"
	"fmt"
)

// memberPayload is one membership record. Depending on the field it appears
// in, the user id lives either at the top level or nested under "user".
type memberPayload struct {
	ID   flexString `json:"id"`
	User struct {
		ID flexString `json:"id"`
	} `json:"user"`
}

func (m memberPayload) userID() string {
	if m.User.ID != "" {
		return string(m.User.ID)
	}
	return string(m.ID)
}

// teamPayload is the loosely typed team record of the workspace listing.
type teamPayload struct {
	ID   flexString `json:"id"`
	Name flexString `json:"name"`

	// The provider spreads membership over several lists.
	Members        []memberPayload `json:"members"`
	Guests         []memberPayload `json:"guests"`
	Users          []memberPayload `json:"users"`
	InvitedMembers []memberPayload `json:"invited_members"`
}

func parseTeams(body []byte) []teamPayload {
	var envelope struct {
		Teams []teamPayload `json:"teams"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	return envelope.Teams
}

// GetTeamMemberIDs returns the union of all membership lists of one team,
// deduplicated and coerced to strings, in first-seen order.
func (c *Client) GetTeamMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	body, err := c.get(ctx, "/team", nil)
	if err != nil {
		return nil, err
	}
	for _, t := range parseTeams(body) {
		if string(t.ID) != teamID {
			continue
		}
		seen := make(map[string]bool)
		var ids []string
		for _, group := range [][]memberPayload{t.Members, t.Guests, t.Users, t.InvitedMembers} {
			for _, m := range group {
				id := m.userID()
				if id == "" || seen[id] {
					continue
				}
				seen[id] = true
				ids = append(ids, id)
			}
		}
		return ids, nil
	}
	return nil, fmt.Errorf("team %s not present in the workspace listing", teamID)
}
