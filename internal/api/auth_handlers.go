package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/opsgrade/posture-engine/internal/tablestore"
)

// Identity passthrough handlers. The engine holds no credentials of its
// own; these proxy to the hosted identity API.

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var creds tablestore.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	if creds.Email == "" || creds.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	auth, err := s.store.Login(r.Context(), creds)
	if err != nil {
		slog.Warn("login failed", "email", creds.Email, "error", err)
		respondError(w, http.StatusUnauthorized, "login_failed", "invalid credentials")
		return
	}

	respondJSON(w, http.StatusOK, auth)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var creds tablestore.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	if creds.Email == "" || creds.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	auth, err := s.store.Register(r.Context(), creds)
	if err != nil {
		slog.Warn("registration failed", "email", creds.Email, "error", err)
		respondError(w, http.StatusBadGateway, "register_failed", "registration failed")
		return
	}

	respondJSON(w, http.StatusCreated, auth)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	token := extractBearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token", "provide Authorization header with Bearer token")
		return
	}

	if err := s.store.Logout(r.Context(), token); err != nil {
		slog.Warn("logout failed", "error", err)
		respondError(w, http.StatusBadGateway, "logout_failed", "logout failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (s *Server) handleResetRequest(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}

	if err := s.store.SendResetPasswordEmail(r.Context(), req.Email); err != nil {
		slog.Warn("password reset request failed", "email", req.Email, "error", err)
		respondError(w, http.StatusBadGateway, "reset_failed", "failed to send reset email")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "reset_email_sent"})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "token and password are required")
		return
	}

	if err := s.store.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		slog.Warn("password reset failed", "error", err)
		respondError(w, http.StatusBadGateway, "reset_failed", "failed to reset password")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "password_reset"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "not_authenticated", "authentication required")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
