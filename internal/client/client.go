// Package client is a typed HTTP client for the TaskHub API plus the view
// state the terminal front end renders from.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/geocoder89/taskhub/internal/domain/task"
	"github.com/geocoder89/taskhub/internal/domain/user"
	"github.com/tidwall/gjson"
)

const genericErrorMessage = "Something went wrong. Please try again."

// ErrNotLoggedIn is returned by protected calls made without a session.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx response. Message is safe to show to the user.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client holds the session token in memory for the life of the process.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New returns a client for baseURL such as "http://localhost:8080".
// A nil httpClient gets a 10s timeout default.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) LoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) Logout() {
	c.setToken("")
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, name, email, password string) (user.Profile, error) {
	var out struct {
		User user.Profile `json:"user"`
	}
	body := user.RegisterRequest{Name: name, Email: email, Password: password}

	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out, false); err != nil {
		return user.Profile{}, err
	}
	return out.User, nil
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	body := user.LoginRequest{Email: email, Password: password}

	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out, false); err != nil {
		return err
	}
	if out.Token == "" {
		return &APIError{Message: genericErrorMessage}
	}

	c.setToken(out.Token)
	return nil
}

func (c *Client) ListTasks(ctx context.Context, search, status string) ([]task.Task, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if status != "" {
		q.Set("status", status)
	}

	path := "/api/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []task.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	if out == nil {
		out = []task.Task{}
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, req task.CreateTaskRequest) (task.Task, error) {
	var out task.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", req, &out, true)
	return out, err
}

func (c *Client) GetTask(ctx context.Context, id string) (task.Task, error) {
	var out task.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, &out, true)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, req task.UpdateTaskRequest) (task.Task, error) {
	var out task.Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), req, &out, true)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil, true)
}

func (c *Client) GetProfile(ctx context.Context) (user.Profile, error) {
	var out user.Profile
	err := c.do(ctx, http.MethodGet, "/api/profile", nil, &out, true)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.Profile, error) {
	var out struct {
		User user.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/profile", req, &out, true); err != nil {
		return user.Profile{}, err
	}
	return out.User, nil
}

// do sends one JSON request. A 401 on a protected call ends the session.
func (c *Client) do(ctx context.Context, method, path string, in, out any, protected bool) error {
	token := c.currentToken()
	if protected && token == "" {
		return ErrNotLoggedIn
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if protected {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if protected && resp.StatusCode == http.StatusUnauthorized {
			c.setToken("")
		}
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: genericErrorMessage}
	}
	return nil
}

// decodeAPIError reads the server's message field. Bodies of any other
// shape become a generic error.
func decodeAPIError(status int, raw []byte) *APIError {
	e := &APIError{Status: status, Message: genericErrorMessage}

	if !gjson.ValidBytes(raw) {
		return e
	}

	if msg := gjson.GetBytes(raw, "message"); msg.Type == gjson.String && msg.Str != "" {
		e.Message = msg.Str
	} else if msg := gjson.GetBytes(raw, "error.message"); msg.Type == gjson.String && msg.Str != "" {
		e.Message = msg.Str
	}

	e.Code = gjson.GetBytes(raw, "error.code").String()

	return e
}
