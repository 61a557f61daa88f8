package api

import (
	"context"
	"net/http"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

func (c *Client) Employees(ctx context.Context, sess *session.Session) ([]model.Employee, error) {
	employees := []model.Employee{}
	if err := c.getJSON(ctx, sess, "/api/admin", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) AddEmployee(ctx context.Context, sess *session.Session, employee model.Employee) (model.Employee, error) {
	if employee.Status == "" {
		employee.Status = "Active"
	}
	if err := c.check(employee); err != nil {
		return model.Employee{}, err
	}
	var created model.Employee
	if err := c.sendJSON(ctx, sess, http.MethodPost, "/api/admin", employee, &created); err != nil {
		return model.Employee{}, err
	}
	return created, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, sess *session.Session, employee model.Employee) (model.Employee, error) {
	if err := c.check(employee); err != nil {
		return model.Employee{}, err
	}
	var updated model.Employee
	if err := c.sendJSON(ctx, sess, http.MethodPut, idPath("/api/admin/%d", employee.ID), employee, &updated); err != nil {
		return model.Employee{}, err
	}
	return updated, nil
}

func (c *Client) RemoveEmployee(ctx context.Context, sess *session.Session, id int64) error {
	return c.sendJSON(ctx, sess, http.MethodDelete, idPath("/api/admin/%d", id), nil, nil)
}
