package clickup

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// maxTaskPages is the hard cap on task pagination.
const maxTaskPages = 200

// Task is a provider task reference, used for filter configuration.
type Task struct {
	ID   string
	Name string
}

// GetTasks fetches every task of a list, including closed ones, walking
// page-number pagination until the provider flags the last page or returns
// an empty page.
func (c *Client) GetTasks(ctx context.Context, listID string) ([]Task, error) {
	var out []Task
	for page := 0; page < maxTaskPages; page++ {
		q := url.Values{
			"archived":       {"false"},
			"include_closed": {"true"},
			"page":           {strconv.Itoa(page)},
		}
		body, err := c.get(ctx, "/list/"+listID+"/task", q)
		if err != nil {
			return nil, err
		}

		var envelope struct {
			Tasks []struct {
				ID   flexString `json:"id"`
				Name flexString `json:"name"`
			} `json:"tasks"`
			LastPage bool `json:"last_page"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return out, nil
		}
		if len(envelope.Tasks) == 0 {
			return out, nil
		}
		for _, t := range envelope.Tasks {
			out = append(out, Task{ID: string(t.ID), Name: string(t.Name)})
		}
		if envelope.LastPage {
			return out, nil
		}
	}
	return out, nil
}
