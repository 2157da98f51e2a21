// Package client is a Go client for the edudesk HTTP API. It speaks the same
// envelope the server emits and distinguishes transport failures from API
// errors: the former come back wrapped, the latter as *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/app/models/dto"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client calls a remote edudesk instance.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken updates the bearer token, typically after Login.
func (c *Client) SetToken(token string) { c.token = token }

// envelope mirrors the server's APIResponse with the data left raw so callers
// can decode it into their own type.
type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

// do sends one request and decodes the body into out (which may be nil).
// Enveloped responses are unwrapped first; raw responses decode as-is.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}, enveloped bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Code: "UNKNOWN", Message: http.StatusText(resp.StatusCode)}
		var env envelope
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil && env.Error != nil {
			apiErr.Code = string(env.Error.Code)
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if !enveloped {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response envelope: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// Login authenticates against the console and stores the returned token on
// the client.
func (c *Client) Login(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	var res dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}, &res, true)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	c.token = res.AccessToken
	return res, nil
}

// Health reports whether the server answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, true)
}

// List fetches every record of a collection.
func List[E any](ctx context.Context, c *Client, collection string) ([]E, error) {
	var out []E
	if err := c.do(ctx, http.MethodGet, "/api/"+collection, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one record by id.
func Get[E any](ctx context.Context, c *Client, collection, id string) (E, error) {
	var out E
	err := c.do(ctx, http.MethodGet, "/api/"+collection+"/"+id, nil, &out, true)
	return out, err
}

// Create adds a record and returns it with server-assigned id and timestamps.
func Create[E any](ctx context.Context, c *Client, collection string, entity E) (E, error) {
	var out E
	err := c.do(ctx, http.MethodPost, "/api/"+collection, entity, &out, true)
	return out, err
}

// Update shallow-merges a partial document over the stored record.
func Update[E any](ctx context.Context, c *Client, collection, id string, patch map[string]interface{}) (E, error) {
	var out E
	err := c.do(ctx, http.MethodPut, "/api/"+collection+"/"+id, patch, &out, true)
	return out, err
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/"+collection+"/"+id, nil, nil, true)
}

// AuditLogs is one page of audit entries.
type AuditLogs struct {
	Logs       []models.AuditLog `json:"logs"`
	Pagination dto.Pagination    `json:"pagination"`
}

// AuditLogs fetches a page of audit entries, newest first.
func (c *Client) AuditLogs(ctx context.Context, page, limit int) (AuditLogs, error) {
	var out AuditLogs
	path := fmt.Sprintf("/api/super-admin/audit/logs?page=%d&limit=%d", page, limit)
	err := c.do(ctx, http.MethodGet, path, nil, &out, false)
	return out, err
}

// Backups is one page of backup snapshots.
type Backups struct {
	Backups    []models.Backup `json:"backups"`
	Pagination dto.Pagination  `json:"pagination"`
}

// Backups fetches a page of backups, newest first.
func (c *Client) Backups(ctx context.Context, page, limit int) (Backups, error) {
	var out Backups
	path := fmt.Sprintf("/api/super-admin/backup?page=%d&limit=%d", page, limit)
	err := c.do(ctx, http.MethodGet, path, nil, &out, false)
	return out, err
}

// CreateBackup snapshots every collection under an optional name.
func (c *Client) CreateBackup(ctx context.Context, name string) (models.Backup, error) {
	var out models.Backup
	err := c.do(ctx, http.MethodPost, "/api/super-admin/backup", dto.CreateBackupRequest{Name: name}, &out, true)
	return out, err
}

// RestoreBackup replaces live collections with a snapshot's contents.
func (c *Client) RestoreBackup(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/super-admin/backup/"+id+"/restore", nil, nil, true)
}

// Roles is one page of console accounts.
type Roles struct {
	Items      []models.UserRole `json:"items"`
	Pagination dto.Pagination    `json:"pagination"`
}

// Roles fetches a page of console accounts.
func (c *Client) Roles(ctx context.Context, page, limit int) (Roles, error) {
	var out Roles
	path := fmt.Sprintf("/api/super-admin/roles?page=%d&limit=%d", page, limit)
	err := c.do(ctx, http.MethodGet, path, nil, &out, false)
	return out, err
}

// CreateRole creates a console account with an assigned role.
func (c *Client) CreateRole(ctx context.Context, req dto.CreateRoleRequest) (models.UserRole, error) {
	var out models.UserRole
	err := c.do(ctx, http.MethodPost, "/api/super-admin/roles", req, &out, true)
	return out, err
}

// UpdateRole changes an account's role or display name.
func (c *Client) UpdateRole(ctx context.Context, id string, req dto.UpdateRoleRequest) (models.UserRole, error) {
	var out models.UserRole
	err := c.do(ctx, http.MethodPut, "/api/super-admin/roles/"+id, req, &out, true)
	return out, err
}

// DeleteRole removes a console account.
func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/super-admin/roles/"+id, nil, nil, true)
}
