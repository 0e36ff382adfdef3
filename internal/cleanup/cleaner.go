package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/opsgrade/posture-engine/internal/session"
)

// Cleaner handles periodic reaping of expired assessment sessions
type Cleaner struct {
	sessions session.Manager
	interval time.Duration
}

// NewCleaner creates a new cleanup worker
func NewCleaner(sessions session.Manager, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Cleaner{
		sessions: sessions,
		interval: interval,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// cleanup reaps sessions whose TTL elapsed before finalization
func (c *Cleaner) cleanup(ctx context.Context) {
	slog.Debug("running cleanup cycle")

	removed, err := c.sessions.CleanupExpired(ctx)
	if err != nil {
		slog.Error("failed to clean up expired sessions", "error", err)
		return
	}

	if removed == 0 {
		slog.Debug("no expired sessions found")
		return
	}

	slog.Info("expired sessions removed", "count", removed)
}
