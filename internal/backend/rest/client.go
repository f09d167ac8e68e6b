// Package rest implements the service.Service interface against the
// JSON task backend (GET/POST /todos, DELETE/PATCH /todos/{id}).
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"todos/internal/config"
	"todos/internal/logging"
	"todos/internal/service"
)

const (
	// todosPath is the collection path under the base URL.
	todosPath = "/todos"

	// RequestIDHeader carries a per-request id for log correlation.
	RequestIDHeader = "X-Request-Id"
)

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url: %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    http.DefaultClient,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig creates a client from the loaded configuration.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	return New(cfg.APIURL, WithLogger(cfg.Log()))
}

// ListTasks returns all tasks owned by ownerID.
func (c *Client) ListTasks(ctx context.Context, ownerID int) ([]service.Task, error) {
	q := url.Values{}
	q.Set("userId", strconv.Itoa(ownerID))

	body, err := c.do(ctx, "list", http.MethodGet, todosPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var tasks []service.Task
	if err := decodeValidated(body, taskListSchema, &tasks); err != nil {
		return nil, &service.NetworkError{Op: "list", Err: err}
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// CreateTask creates a task and returns it with the server-assigned ID.
func (c *Client) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	body, err := c.do(ctx, "create", http.MethodPost, todosPath, draft)
	if err != nil {
		return service.Task{}, err
	}

	var task service.Task
	if err := decodeValidated(body, taskSchema, &task); err != nil {
		return service.Task{}, &service.NetworkError{Op: "create", Err: err}
	}
	return task, nil
}

// DeleteTask deletes a task by ID. The response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	_, err := c.do(ctx, "delete", http.MethodDelete, todosPath+"/"+strconv.Itoa(id), nil)
	return err
}

// UpdateTask applies a partial update.
func (c *Client) UpdateTask(ctx context.Context, id int, patch service.Patch) (service.Task, error) {
	body, err := c.do(ctx, "update", http.MethodPatch, todosPath+"/"+strconv.Itoa(id), patch)
	if err != nil {
		return service.Task{}, err
	}

	var task service.Task
	if err := decodeValidated(body, taskSchema, &task); err != nil {
		return service.Task{}, &service.NetworkError{Op: "update", Err: err}
	}
	return task, nil
}

// do sends one request and returns the response body of a 2xx reply.
// Every failure is a *service.NetworkError.
func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &service.NetworkError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &service.NetworkError{Op: op, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	c.logger.Debug("request", "op", op, "method", method, "path", path, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "request_id", reqID, "err", err)
		return nil, &service.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &service.NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("response", "op", op, "status", resp.StatusCode, "request_id", reqID, "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &service.NetworkError{Op: op, Status: resp.StatusCode}
	}
	return body, nil
}
