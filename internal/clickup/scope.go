package clickup

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/mkretz/budgetwatch/internal/model"
)

// GetTeams lists the workspaces the token grants access to. Folders are not
// populated; use GetScopeTree for the full hierarchy.
func (c *Client) GetTeams(ctx context.Context) ([]model.Team, error) {
	body, err := c.get(ctx, "/team", nil)
	if err != nil {
		return nil, err
	}
	teams := parseTeams(body)
	out := make([]model.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, model.Team{ID: string(t.ID), Name: string(t.Name)})
	}
	return out, nil
}

// GetFolders lists the non-archived folders of a team.
func (c *Client) GetFolders(ctx context.Context, teamID string) ([]model.Folder, error) {
	body, err := c.get(ctx, "/team/"+teamID+"/folder", url.Values{"archived": {"false"}})
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Folders []struct {
			ID   flexString `json:"id"`
			Name flexString `json:"name"`
		} `json:"folders"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, nil
	}
	out := make([]model.Folder, 0, len(envelope.Folders))
	for _, f := range envelope.Folders {
		out = append(out, model.Folder{ID: string(f.ID), Name: string(f.Name)})
	}
	return out, nil
}

// GetLists lists the non-archived lists of a folder.
func (c *Client) GetLists(ctx context.Context, folderID string) ([]model.List, error) {
	body, err := c.get(ctx, "/folder/"+folderID+"/list", url.Values{"archived": {"false"}})
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Lists []struct {
			ID   flexString `json:"id"`
			Name flexString `json:"name"`
		} `json:"lists"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, nil
	}
	out := make([]model.List, 0, len(envelope.Lists))
	for _, l := range envelope.Lists {
		out = append(out, model.List{ID: string(l.ID), Name: string(l.Name)})
	}
	return out, nil
}

// GetAllListsByTeam flattens every folder's lists of one team.
func (c *Client) GetAllListsByTeam(ctx context.Context, teamID string) ([]model.List, error) {
	folders, err := c.GetFolders(ctx, teamID)
	if err != nil {
		return nil, err
	}
	var out []model.List
	for _, f := range folders {
		lists, err := c.GetLists(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, lists...)
	}
	return out, nil
}

// GetScopeTree fetches the full team → folder → list hierarchy. Within one
// team the per-folder list fetches fan out concurrently; this is purely a
// latency optimisation, results are deterministic.
func (c *Client) GetScopeTree(ctx context.Context) (*model.ScopeTree, error) {
	teams, err := c.GetTeams(ctx)
	if err != nil {
		return nil, err
	}
	tree := &model.ScopeTree{Teams: teams}
	for i := range tree.Teams {
		folders, err := c.GetFolders(ctx, tree.Teams[i].ID)
		if err != nil {
			return nil, err
		}

		var wg sync.WaitGroup
		errs := make([]error, len(folders))
		for j := range folders {
			wg.Add(1)
			go func(j int) {
				defer wg.Done()
				lists, err := c.GetLists(ctx, folders[j].ID)
				if err != nil {
					errs[j] = err
					return
				}
				folders[j].Lists = lists
			}(j)
		}
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
		tree.Teams[i].Folders = folders
	}
	return tree, nil
}
