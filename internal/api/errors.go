package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Joseda-hg/hrdesk/internal/session"
)

var ErrInvalidInput = errors.New("invalid input")

// HTTPError is a non-2xx response. A 401 matches session.ErrUnauthorized.
type HTTPError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	message := e.Message
	if message == "" {
		message = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, message)
}

func (e *HTTPError) Is(target error) bool {
	return target == session.ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// TransportError means the request never produced a response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusOf reports the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// Message returns the text the user should see for err.
func Message(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	if errors.Is(err, session.ErrUnauthorized) {
		return "session expired, please log in again"
	}
	return err.Error()
}
