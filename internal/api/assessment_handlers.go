package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/opsgrade/posture-engine/internal/models"
	"github.com/opsgrade/posture-engine/internal/session"
	"github.com/opsgrade/posture-engine/internal/storage"
)

// Assessment session handlers

func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
			return
		}
	}

	createdBy := ""
	if user := UserFromContext(r.Context()); user != nil {
		createdBy = user.Email
	}

	ttl := time.Duration(req.TTL) * time.Second
	sess, err := s.sessions.Create(r.Context(), createdBy, ttl)
	if err != nil {
		slog.Error("failed to create assessment session", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create assessment session")
		return
	}

	respondJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.sessions.Delete(r.Context(), id); err != nil {
		respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": "deleted",
	})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	if req.QuestionID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "question_id is required")
		return
	}

	sess, err := s.sessions.SetAnswer(r.Context(), id, req)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleClearAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	questionID := chi.URLParam(r, "questionId")

	sess, err := s.sessions.ClearAnswer(r.Context(), id, questionID)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleScorecard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := s.sessions.Scorecard(r.Context(), id)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := s.sessions.Finalize(r.Context(), id)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, report)
}

// Report handlers

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	filters := storage.ReportFilters{
		CreatedBy: r.URL.Query().Get("created_by"),
		Limit:     50,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 200 {
			filters.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filters.Offset = offset
		}
	}

	reports, err := s.repo.ListReports(r.Context(), filters)
	if err != nil {
		slog.Error("failed to list reports", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list reports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := s.repo.GetReport(r.Context(), id)
	if err != nil {
		slog.Error("failed to get report", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get report")
		return
	}

	if report == nil {
		respondError(w, http.StatusNotFound, "not_found", "report not found")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.repo.DeleteReport(r.Context(), id); err != nil {
		slog.Error("failed to delete report", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete report")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": "deleted",
	})
}

// respondSessionError maps session manager errors to HTTP status codes
func respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "not_found", "assessment session not found")
	case errors.Is(err, session.ErrSessionFinalized):
		respondError(w, http.StatusConflict, "finalized", "assessment session already finalized")
	case errors.Is(err, session.ErrSessionExpired):
		respondError(w, http.StatusGone, "expired", "assessment session has expired")
	case errors.Is(err, session.ErrUnknownQuestion):
		respondError(w, http.StatusBadRequest, "unknown_question", "question id is not in the catalog")
	case errors.Is(err, session.ErrInvalidAnswer):
		respondError(w, http.StatusBadRequest, "invalid_answer", "answer value must be one of yes, no, partial, na")
	default:
		slog.Error("assessment operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
