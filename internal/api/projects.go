package api

import (
	"context"
	"net/http"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

// Projects lists every project for management roles and the caller's team
// projects otherwise.
func (c *Client) Projects(ctx context.Context, sess *session.Session) ([]model.Project, error) {
	path := "/api/projects/team"
	if sess.Role().IsManagement() {
		path = "/api/projects"
	}
	projects := []model.Project{}
	if err := c.getJSON(ctx, sess, path, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) Project(ctx context.Context, sess *session.Session, id int64) (model.Project, error) {
	format := "/api/projects/team/%d"
	if sess.Role().IsManagement() {
		format = "/api/projects/%d"
	}
	var project model.Project
	if err := c.getJSON(ctx, sess, idPath(format, id), nil, &project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (c *Client) AssignableUsers(ctx context.Context, sess *session.Session) ([]model.Member, error) {
	users := []model.Member{}
	if err := c.getJSON(ctx, sess, "/api/projects/assignable-users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateProject(ctx context.Context, sess *session.Session, draft model.ProjectDraft) (model.Project, error) {
	if err := c.check(draft); err != nil {
		return model.Project{}, err
	}
	var project model.Project
	if err := c.sendJSON(ctx, sess, http.MethodPost, "/api/projects", draft, &project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (c *Client) UpdateProject(ctx context.Context, sess *session.Session, id int64, draft model.ProjectDraft) (model.Project, error) {
	if err := c.check(draft); err != nil {
		return model.Project{}, err
	}
	var project model.Project
	if err := c.sendJSON(ctx, sess, http.MethodPut, idPath("/api/projects/%d", id), draft, &project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (c *Client) DeleteProject(ctx context.Context, sess *session.Session, id int64) error {
	return c.sendJSON(ctx, sess, http.MethodDelete, idPath("/api/projects/%d", id), nil, nil)
}

func (c *Client) AddTask(ctx context.Context, sess *session.Session, projectID int64, draft model.TaskDraft) error {
	if draft.Description == "" {
		draft.Description = "N/A"
	}
	if draft.Category == "" {
		draft.Category = "General"
	}
	if draft.Priority == "" {
		draft.Priority = "Medium"
	}
	if err := c.check(draft); err != nil {
		return err
	}
	return c.sendJSON(ctx, sess, http.MethodPost, idPath("/api/projects/%d/tasks", projectID), draft, nil)
}

func (c *Client) DeleteTask(ctx context.Context, sess *session.Session, projectID, taskID int64) error {
	return c.sendJSON(ctx, sess, http.MethodDelete, idPath("/api/projects/%d/tasks/%d", projectID, taskID), nil, nil)
}

func (c *Client) UpdateBudget(ctx context.Context, sess *session.Session, id int64, budget model.BudgetUpdate) (model.Project, error) {
	if err := c.check(budget); err != nil {
		return model.Project{}, err
	}
	var project model.Project
	if err := c.sendJSON(ctx, sess, http.MethodPut, idPath("/api/projects/%d/budget", id), budget, &project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (c *Client) UpdatePhases(ctx context.Context, sess *session.Session, id int64, phases map[string]model.Phase) (model.Project, error) {
	body := struct {
		Phases map[string]model.Phase `json:"phases"`
	}{phases}
	var project model.Project
	if err := c.sendJSON(ctx, sess, http.MethodPut, idPath("/api/projects/%d/phases", id), body, &project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}
