// Package api is the thin client for the task backend's REST surface.
// One method per endpoint; no retries, no caching. Callers decide what to
// do with failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"taskdeck-cli/internal/model"
)

// DefaultBaseURL is the compiled-in backend endpoint. Overridable via
// config/env/flag (see internal/config).
const DefaultBaseURL = "https://task-manager-backend-zimx.onrender.com"

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

type authResponse struct {
	Token string         `json:"token"`
	User  model.Identity `json:"user"`
	Error string         `json:"error"`
}

// Login exchanges credentials for a bearer token and the identity it belongs to.
func (c *Client) Login(ctx context.Context, email, password string) (string, model.Identity, error) {
	body := map[string]string{"email": email, "password": password}
	return c.auth(ctx, "/auth/login", body)
}

// Signup registers a new account. The role is a client-supplied default; the
// backend remains the authority on what the account may actually do.
func (c *Client) Signup(ctx context.Context, name, email, password string, role model.Role) (string, model.Identity, error) {
	body := map[string]string{"name": name, "email": email, "password": password, "role": string(role)}
	return c.auth(ctx, "/auth/signup", body)
}

func (c *Client) auth(ctx context.Context, path string, body map[string]string) (string, model.Identity, error) {
	raw, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return "", model.Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", model.Identity{}, err
	}
	defer resp.Body.Close()

	var ar authResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		// Proxies answer with HTML error pages; report the status rather
		// than a decode failure.
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", model.Identity{}, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return "", model.Identity{}, fmt.Errorf("decode auth response: %w", err)
	}
	// The backend signals auth failure with an error message instead of a
	// token; surface that message verbatim (it is shown inline in the form).
	if ar.Token == "" {
		msg := strings.TrimSpace(ar.Error)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", model.Identity{}, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return ar.Token, ar.User, nil
}

// ListTasks fetches the full task collection. No pagination.
func (c *Client) ListTasks(ctx context.Context, token string) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get(ctx, token, "/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask submits a new task as a multipart form (the backend's create
// endpoint accepts multipart to allow attachments later). Empty fields are
// omitted from the form: on create, empty means "not set".
func (c *Client) CreateTask(ctx context.Context, token string, fields model.TaskFields) (model.Task, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range []struct{ key, val string }{
		{"title", fields.Title},
		{"description", fields.Description},
		{"status", string(fields.Status)},
		{"priority", string(fields.Priority)},
		{"assignedTo", fields.AssignedTo},
		{"dueDate", fields.DueDate},
	} {
		if f.val == "" {
			continue
		}
		if err := w.WriteField(f.key, f.val); err != nil {
			return model.Task{}, err
		}
	}
	if err := w.Close(); err != nil {
		return model.Task{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tasks", &buf)
	if err != nil {
		return model.Task{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var created model.Task
	if err := c.doAuthed(req, token, &created); err != nil {
		return model.Task{}, err
	}
	return created, nil
}

// UpdateTask replaces the task's mutable fields. Unlike create, the update
// endpoint takes JSON and the full field set, empties included: on update,
// empty means "cleared".
func (c *Client) UpdateTask(ctx context.Context, token, id string, fields model.TaskFields) (model.Task, error) {
	raw, _ := json.Marshal(fields)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/tasks/"+id, bytes.NewReader(raw))
	if err != nil {
		return model.Task{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var updated model.Task
	if err := c.doAuthed(req, token, &updated); err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

func (c *Client) DeleteTask(ctx context.Context, token, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/tasks/"+id, nil)
	if err != nil {
		return err
	}
	return c.doAuthed(req, token, nil)
}

// ListUsers fetches the user directory (used to populate assignment choices).
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.UserRef, error) {
	var users []model.UserRef
	if err := c.get(ctx, token, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Analytics fetches the precomputed aggregate summary for the current token.
func (c *Client) Analytics(ctx context.Context, token string) (model.AnalyticsSummary, error) {
	var sum model.AnalyticsSummary
	if err := c.get(ctx, token, "/analytics", &sum); err != nil {
		return model.AnalyticsSummary{}, err
	}
	return sum, nil
}

func (c *Client) get(ctx context.Context, token, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.doAuthed(req, token, out)
}

func (c *Client) doAuthed(req *http.Request, token string, out any) error {
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func readErrorMessage(resp *http.Response) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if m := strings.TrimSpace(body.Error); m != "" {
			return m
		}
		if m := strings.TrimSpace(body.Message); m != "" {
			return m
		}
	}
	return http.StatusText(resp.StatusCode)
}
