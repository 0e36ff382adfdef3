package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opsgrade/posture-engine/internal/api"
	"github.com/opsgrade/posture-engine/internal/catalog"
	"github.com/opsgrade/posture-engine/internal/cleanup"
	"github.com/opsgrade/posture-engine/internal/config"
	"github.com/opsgrade/posture-engine/internal/recommend"
	"github.com/opsgrade/posture-engine/internal/services"
	"github.com/opsgrade/posture-engine/internal/session"
	"github.com/opsgrade/posture-engine/internal/storage"
	"github.com/opsgrade/posture-engine/internal/tablestore"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting posture-engine",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Run database migrations
	slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
	if err := storage.Migrate(initCtx, cfg.Database.DSN, cfg.Database.MigrationsDir); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize report repository
	repo, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: int32(cfg.Database.MaxOpenConns),
		MaxIdleConns: int32(cfg.Database.MaxIdleConns),
	})
	if err != nil {
		slog.Error("failed to create report repository", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected successfully")

	// Load the question catalog
	cat := catalog.Default()
	if cfg.Catalog.Dir != "" {
		cat, err = catalog.LoadDir(cfg.Catalog.Dir)
		if err != nil {
			slog.Error("failed to load catalog overrides", "dir", cfg.Catalog.Dir, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("question catalog loaded", "domains", len(cat.Domains()), "questions", cat.QuestionCount())

	// Initialize the hosted table store client when configured
	var store *tablestore.Client
	if cfg.TableStore.BaseURL != "" {
		store = tablestore.NewClient(cfg.TableStore.BaseURL, cfg.TableStore.APIToken)
		slog.Info("table store configured", "base_url", cfg.TableStore.BaseURL)
	} else {
		slog.Warn("table store not configured, recommendations served from embedded catalog only")
	}

	// Wire the recommendation resolver
	var primary recommend.Provider
	if store != nil {
		primary = recommend.NewTableProvider(store, cfg.TableStore.RecommendationTable)
	} else {
		primary = recommend.StaticProvider{}
	}
	resolver := recommend.NewResolver(primary, recommend.StaticProvider{})

	// Initialize session storage
	var sessionStore session.Store
	if cfg.Redis.Enabled {
		sessionStore, err = session.NewRedisStore(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("failed to connect session store", "error", err)
			os.Exit(1)
		}
		slog.Info("redis session store connected", "address", cfg.Redis.Address)
	} else {
		sessionStore = session.NewMemoryStore()
		slog.Info("in-memory session store initialized")
	}

	// Initialize the assessment engine
	engine := session.NewEngine(cat, sessionStore, resolver, repo, cfg.Session.TTL)

	// Initialize service registry
	registry := services.NewRegistry()

	postgresProvider, err := services.NewPostgresProvider(cfg.Database.DSN)
	if err != nil {
		slog.Error("failed to create postgres provider", "error", err)
		os.Exit(1)
	}
	registry.Register("postgres", postgresProvider)

	if cfg.Redis.Enabled {
		redisProvider, err := services.NewRedisProvider(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("failed to create redis provider", "error", err)
			os.Exit(1)
		}
		registry.Register("redis", redisProvider)
	}

	if store != nil {
		registry.Register("tablestore", services.NewTableStoreProvider(store, cfg.TableStore.RecommendationTable))
	}

	// Initialize cleanup worker
	cleaner := cleanup.NewCleaner(engine, cfg.Cleanup.Interval)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cleanup worker
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, cfg.TableStore, cat, engine, repo, store, registry)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if err := repo.Close(); err != nil {
		slog.Error("repository close error", "error", err)
	}

	slog.Info("posture-engine stopped")
}
