// Package tablestore is the client for the hosted table-storage and
// identity backend. The backend is an external collaborator with a fixed
// request/response contract; nothing here designs persistence, it only
// speaks the wire format.
package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Filter operators supported by the table API
const (
	OpEqual          = "Equal"
	OpStringContains = "StringContains"
)

// Filter is one {name, op, value} triple. Repeating a filter for the same
// field with different values is an OR in this backend, not an AND.
type Filter struct {
	Name  string `json:"name"`
	Op    string `json:"op"`
	Value string `json:"value"`
}

// PageQuery selects a page of table records
type PageQuery struct {
	PageNo       int      `json:"PageNo"`
	PageSize     int      `json:"PageSize"`
	OrderByField string   `json:"OrderByField,omitempty"`
	IsAsc        bool     `json:"IsAsc"`
	Filters      []Filter `json:"Filters,omitempty"`
}

// Client talks to the hosted backend over JSON HTTP
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a table-store client
func NewClient(baseURL, apiToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// envelope is the backend's uniform response shape: a non-empty error
// string means failure regardless of HTTP status.
type envelope struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// pageResult is the data payload of a page call
type pageResult struct {
	List         []json.RawMessage `json:"List"`
	VirtualCount int               `json:"VirtualCount"`
}

// Page fetches one page of records from tableID. Records are returned raw
// for the caller to decode.
func (c *Client) Page(ctx context.Context, tableID string, q PageQuery) ([]json.RawMessage, int, error) {
	data, err := c.doPost(ctx, fmt.Sprintf("/api/table/%s/page", tableID), q, "")
	if err != nil {
		return nil, 0, err
	}

	var result pageResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode page result: %w", err)
	}
	return result.List, result.VirtualCount, nil
}

// Create inserts a record into tableID
func (c *Client) Create(ctx context.Context, tableID string, record any) error {
	_, err := c.doPost(ctx, fmt.Sprintf("/api/table/%s/create", tableID), record, "")
	return err
}

// Update overwrites the record carrying the given storage ID
func (c *Client) Update(ctx context.Context, tableID string, record any) error {
	_, err := c.doPost(ctx, fmt.Sprintf("/api/table/%s/update", tableID), record, "")
	return err
}

// Delete removes a record by storage ID
func (c *Client) Delete(ctx context.Context, tableID, id string) error {
	payload := map[string]string{"ID": id}
	_, err := c.doPost(ctx, fmt.Sprintf("/api/table/%s/delete", tableID), payload, "")
	return err
}

// Ping verifies the backend answers table queries at all
func (c *Client) Ping(ctx context.Context, tableID string) error {
	_, _, err := c.Page(ctx, tableID, PageQuery{PageNo: 1, PageSize: 1})
	return err
}

// doPost sends a JSON POST and unwraps the response envelope. An optional
// bearer token overrides the client's API token for identity calls made on
// behalf of a user.
func (c *Client) doPost(ctx context.Context, path string, payload any, bearer string) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	token := c.apiToken
	if bearer != "" {
		token = bearer
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if env.Error != "" {
		return nil, fmt.Errorf("backend error: %s", env.Error)
	}

	return env.Data, nil
}
