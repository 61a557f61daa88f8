package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

func (c *Client) Login(ctx context.Context, employeeID, password string) (model.LoginResult, error) {
	creds := struct {
		EmployeeID string `json:"employeeId" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}{strings.TrimSpace(employeeID), password}
	if err := c.check(creds); err != nil {
		return model.LoginResult{}, err
	}

	var result model.LoginResult
	if err := c.sendJSON(ctx, nil, http.MethodPost, "/api/auth/login", creds, &result); err != nil {
		return model.LoginResult{}, err
	}
	if result.Token == "" {
		return model.LoginResult{}, fmt.Errorf("login: backend returned no token")
	}
	return result, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email" validate:"required,email"`
	}{strings.TrimSpace(email)}
	if err := c.check(body); err != nil {
		return err
	}
	return c.sendJSON(ctx, nil, http.MethodPost, "/api/auth/forgot-password", body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := struct {
		Token    string `json:"-" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}{strings.TrimSpace(token), password}
	if err := c.check(body); err != nil {
		return err
	}
	return c.sendJSON(ctx, nil, http.MethodPost, "/api/auth/reset-password/"+url.PathEscape(body.Token), body, nil)
}

func (c *Client) Me(ctx context.Context, sess *session.Session) (model.User, error) {
	var user model.User
	if err := c.getJSON(ctx, sess, "/api/me", nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}
