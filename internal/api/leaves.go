package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

// ApplyLeave uploads the application as multipart form data.
func (c *Client) ApplyLeave(ctx context.Context, sess *session.Session, req model.LeaveRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate.Time) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidInput, req.EndDate, req.StartDate)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"startDate", req.StartDate.String()},
		{"endDate", req.EndDate.String()},
		{"reason", req.Reason},
	}
	for _, field := range fields {
		if err := form.WriteField(field[0], field[1]); err != nil {
			return fmt.Errorf("write %s: %w", field[0], err)
		}
	}
	if req.Document != "" {
		if err := attach(form, "document", req.Document); err != nil {
			return err
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	return c.do(ctx, sess, request{
		method:      http.MethodPost,
		path:        "/api/leaves/apply",
		body:        &buf,
		contentType: form.FormDataContentType(),
	}, nil)
}

func attach(form *multipart.Writer, field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer file.Close()

	part, err := form.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy document: %w", err)
	}
	return nil
}

func (c *Client) MyLeaves(ctx context.Context, sess *session.Session) ([]model.Leave, error) {
	leaves := []model.Leave{}
	if err := c.getJSON(ctx, sess, "/api/leaves/apply", nil, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

// LeaveApplications lists applications for approvers.
func (c *Client) LeaveApplications(ctx context.Context, sess *session.Session) ([]model.Leave, error) {
	leaves := []model.Leave{}
	if err := c.getJSON(ctx, sess, "/api/leaves/admin", nil, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

func (c *Client) SetLeaveStatus(ctx context.Context, sess *session.Session, id int64, status model.LeaveStatus) error {
	body := struct {
		Status model.LeaveStatus `json:"status" validate:"oneof=APPROVED REJECTED"`
	}{status}
	if err := c.check(body); err != nil {
		return err
	}
	return c.sendJSON(ctx, sess, http.MethodPut, idPath("/api/leaves/admin/%d/status", id), body, nil)
}
