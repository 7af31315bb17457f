package api

import (
	"context"

	"github.com/novaqhq/novaq/internal/model"
)

// ListProjects fetches every project owned by the authenticated user.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.get(ctx, "/api/v1/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project and returns the stored record.
func (c *Client) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	var out model.Project
	if err := c.post(ctx, "/api/v1/projects", p, &out); err != nil {
		return model.Project{}, err
	}
	return out, nil
}

// UpdateProject replaces a project's mutable fields.
func (c *Client) UpdateProject(ctx context.Context, p model.Project) (model.Project, error) {
	var out model.Project
	if err := c.put(ctx, "/api/v1/projects/"+p.ID, p, &out); err != nil {
		return model.Project{}, err
	}
	return out, nil
}

// DeleteProject removes a project and its embedded events.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/v1/projects/"+id)
}

// ReplaceEvents writes a project's full event array. The server stores the
// array wholesale; concurrent writers are last-writer-wins.
func (c *Client) ReplaceEvents(ctx context.Context, projectID string, events []model.CalendarEvent) error {
	if events == nil {
		events = []model.CalendarEvent{}
	}
	return c.put(ctx, "/api/v1/projects/"+projectID+"/events", events, nil)
}
