package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/opsgrade/posture-engine/internal/catalog"
	"github.com/opsgrade/posture-engine/internal/config"
	"github.com/opsgrade/posture-engine/internal/models"
	"github.com/opsgrade/posture-engine/internal/recommend"
	"github.com/opsgrade/posture-engine/internal/services"
	"github.com/opsgrade/posture-engine/internal/session"
	"github.com/opsgrade/posture-engine/internal/storage"
)

type fakeRepo struct {
	saved []*models.Report
}

func (f *fakeRepo) SaveReport(ctx context.Context, report *models.Report) error {
	f.saved = append(f.saved, report)
	return nil
}

func (f *fakeRepo) GetReport(ctx context.Context, id string) (*models.Report, error) {
	for _, r := range f.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListReports(ctx context.Context, filters storage.ReportFilters) ([]*models.Report, error) {
	return f.saved, nil
}

func (f *fakeRepo) DeleteReport(ctx context.Context, id string) error { return nil }
func (f *fakeRepo) Ping(ctx context.Context) error                    { return nil }
func (f *fakeRepo) Close() error                                      { return nil }

// newTestServer builds a server without a table store: auth passes
// through and recommendations come from the seed catalog.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo := &fakeRepo{}
	resolver := recommend.NewResolver(nil, recommend.StaticProvider{})
	engine := session.NewEngine(catalog.Default(), session.NewMemoryStore(), resolver, repo, time.Hour)

	return NewServer(
		config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		config.TableStoreConfig{RecommendationTable: "recommendation_catalog", AdminRole: "admin"},
		catalog.Default(),
		engine,
		repo,
		nil,
		services.NewRegistry(),
	)
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v (%s)", err, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("failed to decode data: %v (%s)", err, envelope.Data)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doRequest(t, srv, "GET", "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAssessmentLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Create
	rec := doRequest(t, srv, "POST", "/api/v1/assessments/", map[string]int{})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var sess models.AssessmentSession
	decodeData(t, rec, &sess)
	if sess.ID == "" {
		t.Fatal("empty session id")
	}

	// Answer
	rec = doRequest(t, srv, "PUT", "/api/v1/assessments/"+sess.ID+"/answers", models.SubmitAnswerRequest{
		QuestionID: "iam-1",
		Value:      models.AnswerYes,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("answer: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	// Scorecard
	rec = doRequest(t, srv, "GET", "/api/v1/assessments/"+sess.ID+"/scorecard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("scorecard: expected 200, got %d", rec.Code)
	}
	var scorecard models.Report
	decodeData(t, rec, &scorecard)
	if len(scorecard.Domains) != 9 {
		t.Errorf("expected 9 domain results, got %d", len(scorecard.Domains))
	}

	// Finalize
	rec = doRequest(t, srv, "POST", "/api/v1/assessments/"+sess.ID+"/report", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("finalize: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var report models.Report
	decodeData(t, rec, &report)
	if report.ID == "" {
		t.Fatal("finalized report missing id")
	}

	// Fetch stored report
	rec = doRequest(t, srv, "GET", "/api/v1/reports/"+report.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get report: expected 200, got %d", rec.Code)
	}

	// Further answers rejected
	rec = doRequest(t, srv, "PUT", "/api/v1/assessments/"+sess.ID+"/answers", models.SubmitAnswerRequest{
		QuestionID: "iam-2",
		Value:      models.AnswerYes,
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("answer after finalize: expected 409, got %d", rec.Code)
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "POST", "/api/v1/assessments/", nil)
	var sess models.AssessmentSession
	decodeData(t, rec, &sess)

	tests := []struct {
		name string
		req  models.SubmitAnswerRequest
		code int
	}{
		{"missing question id", models.SubmitAnswerRequest{Value: models.AnswerYes}, http.StatusBadRequest},
		{"invalid value", models.SubmitAnswerRequest{QuestionID: "iam-1", Value: "maybe"}, http.StatusBadRequest},
		{"unknown question", models.SubmitAnswerRequest{QuestionID: "zz-99", Value: models.AnswerYes}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := doRequest(t, srv, "PUT", "/api/v1/assessments/"+sess.ID+"/answers", tt.req)
		if rec.Code != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.code, rec.Code)
		}
	}
}

func TestUnknownSessionIs404(t *testing.T) {
	srv := newTestServer(t)
	rec := doRequest(t, srv, "GET", "/api/v1/assessments/nope/", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "GET", "/api/v1/catalog/domains", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("domains: expected 200, got %d", rec.Code)
	}
	var domainsResp struct {
		Domains       []models.Domain `json:"domains"`
		QuestionCount int             `json:"question_count"`
	}
	decodeData(t, rec, &domainsResp)
	if len(domainsResp.Domains) != 9 {
		t.Errorf("expected 9 domains, got %d", len(domainsResp.Domains))
	}

	rec = doRequest(t, srv, "GET", "/api/v1/catalog/domains/iam", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("iam domain: expected 200, got %d", rec.Code)
	}

	rec = doRequest(t, srv, "GET", "/api/v1/catalog/domains/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown domain: expected 404, got %d", rec.Code)
	}

	rec = doRequest(t, srv, "GET", "/api/v1/catalog/levels", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("levels: expected 200, got %d", rec.Code)
	}
}

func TestAdminWithoutStoreIs503(t *testing.T) {
	srv := newTestServer(t)
	rec := doRequest(t, srv, "GET", "/api/v1/admin/recommendations/", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a configured store, got %d", rec.Code)
	}
}

func TestRecommendationPayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload recommendationPayload
		valid   bool
	}{
		{"complete", recommendationPayload{Title: "t", Description: "d", Domain: "ops", Priority: "high"}, true},
		{"no priority defaults later", recommendationPayload{Title: "t", Description: "d", Domain: "ops"}, true},
		{"missing title", recommendationPayload{Description: "d", Domain: "ops"}, false},
		{"missing description", recommendationPayload{Title: "t", Domain: "ops"}, false},
		{"missing domain", recommendationPayload{Title: "t", Description: "d"}, false},
		{"bad priority", recommendationPayload{Title: "t", Description: "d", Domain: "ops", Priority: "urgent"}, false},
	}

	for _, tt := range tests {
		msg := tt.payload.validate()
		if tt.valid && msg != "" {
			t.Errorf("%s: expected valid, got %q", tt.name, msg)
		}
		if !tt.valid && msg == "" {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
