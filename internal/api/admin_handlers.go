package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/opsgrade/posture-engine/internal/models"
	"github.com/opsgrade/posture-engine/internal/tablestore"
)

// Admin recommendation catalog handlers. These operate directly on the
// hosted table store; the in-process resolver picks changes up on the
// next assessment finalization.

type recommendationPayload struct {
	RecommendationID string   `json:"recommendation_id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Priority         string   `json:"priority"`
	Domain           string   `json:"domain"`
	Technologies     []string `json:"technologies,omitempty"`
	Effort           string   `json:"effort,omitempty"`
	IsActive         bool     `json:"is_active"`
}

func (p *recommendationPayload) validate() string {
	if p.Title == "" {
		return "title is required"
	}
	if p.Description == "" {
		return "description is required"
	}
	if p.Domain == "" {
		return "domain is required"
	}
	if p.Priority != "" && !models.Priority(p.Priority).Valid() {
		return "priority must be one of high, medium, low"
	}
	return ""
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "recommendation store is not configured")
		return false
	}
	return true
}

func (s *Server) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	query := r.URL.Query()

	page := 1
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	pageSize := 50
	if sizeStr := query.Get("page_size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 && size <= 200 {
			pageSize = size
		}
	}

	var filters []tablestore.Filter
	if domain := query.Get("domain"); domain != "" {
		filters = append(filters, tablestore.Filter{Name: "domain", Op: tablestore.OpEqual, Value: domain})
	}
	// Repeated priority values widen the match rather than narrowing it
	for _, priority := range query["priority"] {
		if priority != "" {
			filters = append(filters, tablestore.Filter{Name: "priority", Op: tablestore.OpEqual, Value: priority})
		}
	}
	if search := query.Get("search"); search != "" {
		filters = append(filters, tablestore.Filter{Name: "title", Op: tablestore.OpStringContains, Value: search})
	}

	records, total, err := s.store.PageRecommendations(r.Context(), s.catalogTable, tablestore.PageQuery{
		PageNo:       page,
		PageSize:     pageSize,
		OrderByField: "recommendation_id",
		IsAsc:        true,
		Filters:      filters,
	})
	if err != nil {
		slog.Error("failed to list recommendations", "error", err)
		respondError(w, http.StatusBadGateway, "store_error", "failed to query recommendation store")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": records,
		"total":           total,
		"page":            page,
		"page_size":       pageSize,
	})
}

func (s *Server) handleCreateRecommendation(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var payload recommendationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	if msg := payload.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	record, err := payload.toRecord("")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := s.store.Create(r.Context(), s.catalogTable, record); err != nil {
		slog.Error("failed to create recommendation", "error", err, "recommendation_id", payload.RecommendationID)
		respondError(w, http.StatusBadGateway, "store_error", "failed to create recommendation")
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

func (s *Server) handleUpdateRecommendation(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id := chi.URLParam(r, "id")

	var payload recommendationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	if msg := payload.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	record, err := payload.toRecord(id)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := s.store.Update(r.Context(), s.catalogTable, record); err != nil {
		slog.Error("failed to update recommendation", "error", err, "id", id)
		respondError(w, http.StatusBadGateway, "store_error", "failed to update recommendation")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteRecommendation(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id := chi.URLParam(r, "id")

	if err := s.store.Delete(r.Context(), s.catalogTable, id); err != nil {
		slog.Error("failed to delete recommendation", "error", err, "id", id)
		respondError(w, http.StatusBadGateway, "store_error", "failed to delete recommendation")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": "deleted",
	})
}

type bulkRequest struct {
	Action string   `json:"action"` // activate, deactivate, delete
	IDs    []string `json:"ids"`
}

type bulkFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// handleBulkRecommendations applies one action to many rows. A failing
// row does not abort the rest; the response reports both tallies.
func (s *Server) handleBulkRecommendations(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	if len(req.IDs) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "ids is required")
		return
	}

	var apply func(id string) error
	switch req.Action {
	case "activate":
		apply = func(id string) error {
			return s.store.Update(r.Context(), s.catalogTable, map[string]interface{}{"ID": id, "is_active": true})
		}
	case "deactivate":
		apply = func(id string) error {
			return s.store.Update(r.Context(), s.catalogTable, map[string]interface{}{"ID": id, "is_active": false})
		}
	case "delete":
		apply = func(id string) error {
			return s.store.Delete(r.Context(), s.catalogTable, id)
		}
	default:
		respondError(w, http.StatusBadRequest, "invalid_request", "action must be one of activate, deactivate, delete")
		return
	}

	updated := 0
	failures := []bulkFailure{}
	for _, id := range req.IDs {
		if err := apply(id); err != nil {
			slog.Warn("bulk recommendation action failed", "action", req.Action, "id", id, "error", err)
			failures = append(failures, bulkFailure{ID: id, Error: err.Error()})
			continue
		}
		updated++
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"action":  req.Action,
		"updated": updated,
		"failed":  failures,
	})
}

func (p *recommendationPayload) toRecord(storageID string) (tablestore.RecommendationRecord, error) {
	technologies, err := tablestore.EncodeTechnologies(p.Technologies)
	if err != nil {
		return tablestore.RecommendationRecord{}, err
	}

	priority := p.Priority
	if priority == "" {
		priority = string(models.PriorityMedium)
	}

	return tablestore.RecommendationRecord{
		ID:               storageID,
		RecommendationID: p.RecommendationID,
		Title:            p.Title,
		Description:      p.Description,
		Priority:         priority,
		Domain:           p.Domain,
		Technologies:     technologies,
		Effort:           p.Effort,
		IsActive:         p.IsActive,
	}, nil
}
