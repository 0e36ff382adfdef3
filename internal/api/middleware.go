package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/opsgrade/posture-engine/internal/tablestore"
)

// AuthMiddleware validates bearer tokens against the hosted identity API
type AuthMiddleware struct {
	identity  *tablestore.Client
	adminRole string
}

// NewAuthMiddleware creates new auth middleware. A nil identity client
// disables authentication entirely, for single-user deployments without
// a hosted backend.
func NewAuthMiddleware(identity *tablestore.Client, adminRole string) *AuthMiddleware {
	return &AuthMiddleware{identity: identity, adminRole: adminRole}
}

// Authenticate verifies the bearer token from the Authorization header
// and attaches the resolved user to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.identity == nil {
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearerToken(r)
		if token == "" {
			writeAuthError(w, http.StatusUnauthorized, "missing token", "provide Authorization header with Bearer token")
			return
		}

		user, err := m.identity.UserInfo(r.Context(), token)
		if err != nil {
			slog.Warn("token verification failed", "error", err, "remote_addr", r.RemoteAddr)
			writeAuthError(w, http.StatusUnauthorized, "invalid token", "the provided token is not valid")
			return
		}

		slog.Debug("authenticated request", "user", user.Email)

		ctx := ContextWithUser(r.Context(), user)
		ctx = ContextWithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests whose user lacks the configured admin role
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.identity == nil {
			next.ServeHTTP(w, r)
			return
		}

		user := UserFromContext(r.Context())
		if user == nil {
			writeAuthError(w, http.StatusUnauthorized, "not authenticated", "authentication required")
			return
		}

		if !user.HasRole(m.adminRole) {
			slog.Warn("role denied", "user", user.Email, "required", m.adminRole)
			writeAuthError(w, http.StatusForbidden, "role denied",
				"user does not have required role: "+m.adminRole)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractBearerToken extracts the token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return authHeader
}

// writeAuthError writes auth errors in the standard response format
func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode auth error", "error", err)
	}
}
