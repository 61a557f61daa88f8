package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/Joseda-hg/hrdesk/internal/metrics"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

const defaultTimeout = 30 * time.Second

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

// Client talks to the HR backend. Authenticated calls take the session
// explicitly; a 401 ends that session.
type Client struct {
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
	logger    *slog.Logger
	metrics   *metrics.Metrics
	validate  *validator.Validate
}

func New(opts Options) *Client {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		timeout:   timeout,
		transport: transport,
		logger:    logger,
		metrics:   opts.Metrics,
		validate:  validator.New(),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func (c *Client) getJSON(ctx context.Context, sess *session.Session, path string, query url.Values, out any) error {
	return c.do(ctx, sess, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) sendJSON(ctx context.Context, sess *session.Session, method, path string, in, out any) error {
	req := request{method: method, path: path}
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		req.body = bytes.NewReader(data)
		req.contentType = "application/json"
	}
	return c.do(ctx, sess, req, out)
}

func (c *Client) check(value any) error {
	if err := c.validate.Struct(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (c *Client) httpClient(sess *session.Session) (*http.Client, error) {
	if sess == nil {
		return &http.Client{Transport: c.transport}, nil
	}
	token := sess.Token()
	if token == "" {
		return nil, fmt.Errorf("%w: %w", session.ErrEnded, session.ErrUnauthorized)
	}
	return &http.Client{Transport: &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   c.transport,
	}}, nil
}

func (c *Client) do(ctx context.Context, sess *session.Session, r request, out any) error {
	client, err := c.httpClient(sess)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	route := routeOf(r.path)
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.metrics.ObserveAPI(r.method, route, 0, time.Since(start))
		c.logger.Warn("backend request failed", "method", r.method, "route", route, "request_id", requestID, "error", err)
		return &TransportError{Method: r.method, Path: r.path, Err: err}
	}
	defer resp.Body.Close()
	c.metrics.ObserveAPI(r.method, route, resp.StatusCode, time.Since(start))
	c.logger.Debug("backend request", "method", r.method, "route", route, "status", resp.StatusCode, "request_id", requestID)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: r.method, Path: r.path, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Method: r.method, Path: r.path, Status: resp.StatusCode, Message: errorMessage(data)}
		if resp.StatusCode == http.StatusUnauthorized && sess != nil {
			c.logger.Info("backend rejected credential, ending session", "route", route)
			sess.End()
		}
		return httpErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

func errorMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		return body.Message
	}
	text := strings.TrimSpace(string(data))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

var numericSegment = regexp.MustCompile(`/\d+(/|$)`)

// routeOf collapses ids so metric labels stay bounded.
func routeOf(path string) string {
	if strings.HasPrefix(path, "/api/auth/reset-password/") {
		return "/api/auth/reset-password/:token"
	}
	for numericSegment.MatchString(path) {
		path = numericSegment.ReplaceAllString(path, "/:id$1")
	}
	return path
}

func idPath(format string, ids ...int64) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(format, args...)
}
