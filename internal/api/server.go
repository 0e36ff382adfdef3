package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/opsgrade/posture-engine/internal/catalog"
	"github.com/opsgrade/posture-engine/internal/config"
	"github.com/opsgrade/posture-engine/internal/services"
	"github.com/opsgrade/posture-engine/internal/session"
	"github.com/opsgrade/posture-engine/internal/storage"
	"github.com/opsgrade/posture-engine/internal/tablestore"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	catalog        *catalog.Catalog
	sessions       session.Manager
	repo           storage.Repository
	store          *tablestore.Client
	registry       *services.Registry
	authMiddleware *AuthMiddleware
	catalogTable   string
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	storeCfg config.TableStoreConfig,
	cat *catalog.Catalog,
	sessions session.Manager,
	repo storage.Repository,
	store *tablestore.Client,
	registry *services.Registry,
) *Server {
	s := &Server{
		config:         cfg,
		catalog:        cat,
		sessions:       sessions,
		repo:           repo,
		store:          store,
		registry:       registry,
		authMiddleware: NewAuthMiddleware(store, storeCfg.AdminRole),
		catalogTable:   storeCfg.RecommendationTable,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (outside versioned API - public)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api/v1", func(r chi.Router) {
		// Identity passthrough (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/register", s.handleRegister)
			r.Post("/logout", s.handleLogout)
			r.Post("/password/reset-request", s.handleResetRequest)
			r.Post("/password/reset", s.handleResetPassword)
		})

		// Everything else requires an authenticated user
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware.Authenticate)

			r.Get("/me", s.handleMe)

			// Reference data
			r.Route("/catalog", func(r chi.Router) {
				r.Get("/domains", s.handleListDomains)
				r.Get("/domains/{domainId}", s.handleGetDomain)
				r.Get("/levels", s.handleListLevels)
			})

			// Assessment sessions
			r.Route("/assessments", func(r chi.Router) {
				r.Post("/", s.handleCreateAssessment)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetAssessment)
					r.Delete("/", s.handleDeleteAssessment)
					r.Put("/answers", s.handleSubmitAnswer)
					r.Delete("/answers/{questionId}", s.handleClearAnswer)
					r.Get("/scorecard", s.handleScorecard)
					r.Post("/report", s.handleFinalize)
					r.Get("/stream", s.handleScoreStream)
				})
			})

			// Finalized reports
			r.Route("/reports", func(r chi.Router) {
				r.Get("/", s.handleListReports)
				r.Get("/{id}", s.handleGetReport)
				r.Delete("/{id}", s.handleDeleteReport)
			})

			// Admin catalog management
			r.Route("/admin/recommendations", func(r chi.Router) {
				r.Use(s.authMiddleware.RequireAdmin)

				r.Get("/", s.handleListRecommendations)
				r.Post("/", s.handleCreateRecommendation)
				r.Put("/{id}", s.handleUpdateRecommendation)
				r.Delete("/{id}", s.handleDeleteRecommendation)
				r.Post("/bulk", s.handleBulkRecommendations)
			})
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
