// Package client is a Go SDK for the posture-engine API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a Go SDK for the posture-engine API
type Client struct {
	baseURL    string
	token      string
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

// NewClient creates a new posture-engine client. The token is the bearer
// token obtained from Login, or empty for unauthenticated deployments.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken replaces the bearer token, typically after Login
func (c *Client) SetToken(token string) {
	c.token = token
}

// Assessment represents an assessment session response
type Assessment struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Answers   map[string]Answer `json:"answers"`
	ReportID  string            `json:"report_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	ExpiresAt time.Time         `json:"expires_at"`
	CreatedBy string            `json:"created_by,omitempty"`
}

// Answer is one recorded response
type Answer struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
	Notes      string `json:"notes,omitempty"`
}

// Question is one catalog question
type Question struct {
	ID       string `json:"id"`
	Prompt   string `json:"prompt"`
	Category string `json:"category,omitempty"`
	Weight   int    `json:"weight,omitempty"`
}

// Domain is one catalog domain with its questions
type Domain struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Icon        string     `json:"icon,omitempty"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// MaturityLevel is one band of the maturity scale
type MaturityLevel struct {
	Ordinal     int    `json:"ordinal"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// DomainResult is the scored outcome for one domain
type DomainResult struct {
	DomainID        string            `json:"domain_id"`
	DomainName      string            `json:"domain_name"`
	Achieved        float64           `json:"achieved"`
	MaxScore        float64           `json:"max_score"`
	Percentage      float64           `json:"percentage"`
	Level           MaturityLevel     `json:"level"`
	QuestionScores  map[string]int    `json:"question_scores,omitempty"`
	Notes           map[string]string `json:"notes,omitempty"`
	Gapped          bool              `json:"gapped"`
	Recommendations []Recommendation  `json:"recommendations,omitempty"`
}

// Recommendation is one remediation suggestion
type Recommendation struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Priority     string   `json:"priority"`
	Domain       string   `json:"domain,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Effort       string   `json:"effort,omitempty"`
	Contextual   bool     `json:"contextual,omitempty"`
	Rationale    string   `json:"rationale,omitempty"`
}

// Report is a scorecard or finalized assessment report
type Report struct {
	ID              string           `json:"id,omitempty"`
	SessionID       string           `json:"session_id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	OverallScore    float64          `json:"overall_score"`
	OverallLevel    MaturityLevel    `json:"overall_level"`
	Domains         []DomainResult   `json:"domains"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Insights        json.RawMessage  `json:"insights,omitempty"`
	CreatedBy       string           `json:"created_by,omitempty"`
}

// SubmitAnswerRequest records or overwrites one answer
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
	Notes      string `json:"notes,omitempty"`
}

// ListReportsOptions narrows report listings
type ListReportsOptions struct {
	CreatedBy string
	Limit     int
	Offset    int
}

// AuthSession is the result of a successful login or registration
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// User describes an authenticated principal
type User struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Login authenticates and stores the returned token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*AuthSession, error) {
	var auth AuthSession
	err := c.call(ctx, "POST", "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &auth)
	if err != nil {
		return nil, err
	}

	c.token = auth.Token
	return &auth, nil
}

// CreateAssessment starts a new assessment session. ttl of zero uses the
// server default.
func (c *Client) CreateAssessment(ctx context.Context, ttl time.Duration) (*Assessment, error) {
	var sess Assessment
	err := c.call(ctx, "POST", "/api/v1/assessments", map[string]int{
		"ttl": int(ttl.Seconds()),
	}, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetAssessment retrieves an assessment session by ID
func (c *Client) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	var sess Assessment
	err := c.call(ctx, "GET", "/api/v1/assessments/"+url.PathEscape(id), nil, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// DeleteAssessment discards a session and its answers
func (c *Client) DeleteAssessment(ctx context.Context, id string) error {
	return c.call(ctx, "DELETE", "/api/v1/assessments/"+url.PathEscape(id), nil, nil)
}

// SubmitAnswer records or overwrites one answer on a session
func (c *Client) SubmitAnswer(ctx context.Context, id string, req SubmitAnswerRequest) (*Assessment, error) {
	var sess Assessment
	err := c.call(ctx, "PUT", "/api/v1/assessments/"+url.PathEscape(id)+"/answers", req, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// ClearAnswer removes one recorded answer from a session
func (c *Client) ClearAnswer(ctx context.Context, id, questionID string) (*Assessment, error) {
	var sess Assessment
	path := "/api/v1/assessments/" + url.PathEscape(id) + "/answers/" + url.PathEscape(questionID)
	err := c.call(ctx, "DELETE", path, nil, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Scorecard computes a live, unpersisted report for a session
func (c *Client) Scorecard(ctx context.Context, id string) (*Report, error) {
	var report Report
	err := c.call(ctx, "GET", "/api/v1/assessments/"+url.PathEscape(id)+"/scorecard", nil, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Finalize closes a session and persists its report
func (c *Client) Finalize(ctx context.Context, id string) (*Report, error) {
	var report Report
	err := c.call(ctx, "POST", "/api/v1/assessments/"+url.PathEscape(id)+"/report", nil, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetReport retrieves a finalized report by ID
func (c *Client) GetReport(ctx context.Context, id string) (*Report, error) {
	var report Report
	err := c.call(ctx, "GET", "/api/v1/reports/"+url.PathEscape(id), nil, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports retrieves finalized reports
func (c *Client) ListReports(ctx context.Context, opts ListReportsOptions) ([]*Report, error) {
	query := url.Values{}
	if opts.CreatedBy != "" {
		query.Set("created_by", opts.CreatedBy)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	path := "/api/v1/reports"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var result struct {
		Reports []*Report `json:"reports"`
		Count   int       `json:"count"`
	}
	if err := c.call(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return result.Reports, nil
}

// ListDomains retrieves the question catalog
func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	var result struct {
		Domains       []Domain `json:"domains"`
		QuestionCount int      `json:"question_count"`
	}
	if err := c.call(ctx, "GET", "/api/v1/catalog/domains", nil, &result); err != nil {
		return nil, err
	}
	return result.Domains, nil
}

// ListLevels retrieves the maturity scale
func (c *Client) ListLevels(ctx context.Context) ([]MaturityLevel, error) {
	var result struct {
		Levels []MaturityLevel `json:"levels"`
	}
	if err := c.call(ctx, "GET", "/api/v1/catalog/levels", nil, &result); err != nil {
		return nil, err
	}
	return result.Levels, nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	return c.call(ctx, "GET", "/health", nil, nil)
}

// call performs one API request and decodes the standard envelope
func (c *Client) call(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	var result struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		if result.Error != nil {
			return fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
		}
		return fmt.Errorf("API error: request failed")
	}

	if out != nil && len(result.Data) > 0 {
		if err := json.Unmarshal(result.Data, out); err != nil {
			return fmt.Errorf("failed to unmarshal response data: %w", err)
		}
	}

	return nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
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

	return respBody, nil
}
