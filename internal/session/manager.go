// Package session manages assessment sessions: the mutable answer state of
// one respondent from first answer to finalized report.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/opsgrade/posture-engine/internal/assessment"
	"github.com/opsgrade/posture-engine/internal/catalog"
	"github.com/opsgrade/posture-engine/internal/models"
	"github.com/opsgrade/posture-engine/internal/recommend"
	"github.com/opsgrade/posture-engine/internal/storage"
)

// Common errors
var (
	ErrSessionNotFound  = errors.New("assessment session not found")
	ErrSessionFinalized = errors.New("assessment session already finalized")
	ErrSessionExpired   = errors.New("assessment session has expired")
	ErrUnknownQuestion  = errors.New("unknown question")
	ErrInvalidAnswer    = errors.New("invalid answer value")
)

// Manager defines the assessment session lifecycle
type Manager interface {
	Create(ctx context.Context, createdBy string, ttl time.Duration) (*models.AssessmentSession, error)
	Get(ctx context.Context, id string) (*models.AssessmentSession, error)
	SetAnswer(ctx context.Context, id string, req models.SubmitAnswerRequest) (*models.AssessmentSession, error)
	ClearAnswer(ctx context.Context, id, questionID string) (*models.AssessmentSession, error)
	Scorecard(ctx context.Context, id string) (*models.Report, error)
	Finalize(ctx context.Context, id string) (*models.Report, error)
	Delete(ctx context.Context, id string) error
	Watch(id string) (<-chan *models.Report, func())
	CleanupExpired(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// Engine implements Manager over a Store, the question catalog, the
// recommendation resolver, and the report repository.
type Engine struct {
	catalog    *catalog.Catalog
	store      Store
	resolver   *recommend.Resolver
	repo       storage.Repository
	hub        *hub
	defaultTTL time.Duration
}

// NewEngine creates a session engine
func NewEngine(cat *catalog.Catalog, store Store, resolver *recommend.Resolver, repo storage.Repository, defaultTTL time.Duration) *Engine {
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &Engine{
		catalog:    cat,
		store:      store,
		resolver:   resolver,
		repo:       repo,
		hub:        newHub(),
		defaultTTL: defaultTTL,
	}
}

// Create starts a new assessment session
func (e *Engine) Create(ctx context.Context, createdBy string, ttl time.Duration) (*models.AssessmentSession, error) {
	if ttl <= 0 {
		ttl = e.defaultTTL
	}

	now := time.Now().UTC()
	s := &models.AssessmentSession{
		ID:        uuid.New().String()[:12],
		Status:    models.SessionActive,
		Answers:   make(map[string]models.Answer),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
		CreatedBy: createdBy,
	}

	if err := e.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	slog.Info("assessment session created",
		"id", s.ID,
		"created_by", createdBy,
		"expires_at", s.ExpiresAt,
	)
	return s, nil
}

// Get retrieves a session
func (e *Engine) Get(ctx context.Context, id string) (*models.AssessmentSession, error) {
	s, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}
	if s.Status == models.SessionActive && s.IsExpired() {
		s.Status = models.SessionExpired
	}
	return s, nil
}

// SetAnswer records or overwrites the answer for one question and
// broadcasts a recomputed scorecard to stream subscribers. Exactly one
// answer exists per question; submitting again replaces it.
func (e *Engine) SetAnswer(ctx context.Context, id string, req models.SubmitAnswerRequest) (*models.AssessmentSession, error) {
	if !req.Value.Valid() {
		return nil, ErrInvalidAnswer
	}
	if _, _, ok := e.catalog.Question(req.QuestionID); !ok {
		return nil, ErrUnknownQuestion
	}

	s, err := e.writableSession(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Answers[req.QuestionID] = models.Answer{
		QuestionID: req.QuestionID,
		Value:      req.Value,
		Notes:      req.Notes,
	}
	s.UpdatedAt = time.Now().UTC()

	if err := e.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	e.broadcast(ctx, s)
	return s, nil
}

// ClearAnswer removes a recorded answer, returning the question to its
// meaningful unanswered state.
func (e *Engine) ClearAnswer(ctx context.Context, id, questionID string) (*models.AssessmentSession, error) {
	s, err := e.writableSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, ok := s.Answers[questionID]; !ok {
		return s, nil
	}
	delete(s.Answers, questionID)
	s.UpdatedAt = time.Now().UTC()

	if err := e.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	e.broadcast(ctx, s)
	return s, nil
}

// Scorecard re-derives the full report view from current answer state.
// Nothing is cached or persisted; this is cheap enough to run on every
// answer change.
func (e *Engine) Scorecard(ctx context.Context, id string) (*models.Report, error) {
	s, err := e.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.synthesize(ctx, s), nil
}

// Finalize computes the report one last time, persists it, and marks the
// session completed. A completed session no longer accepts answers.
func (e *Engine) Finalize(ctx context.Context, id string) (*models.Report, error) {
	s, err := e.writableSession(ctx, id)
	if err != nil {
		return nil, err
	}

	report := e.synthesize(ctx, s)
	report.ID = uuid.New().String()
	report.CreatedBy = s.CreatedBy

	if err := e.repo.SaveReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.Status = models.SessionCompleted
	s.ReportID = report.ID
	s.UpdatedAt = time.Now().UTC()
	if err := e.store.Put(ctx, s); err != nil {
		// report is already durable; the stale session will age out
		slog.Error("failed to mark session completed", "error", err, "id", s.ID)
	}

	slog.Info("assessment finalized",
		"session_id", s.ID,
		"report_id", report.ID,
		"overall", report.OverallScore,
		"level", report.OverallLevel.Name,
	)
	return report, nil
}

// Delete removes a session and closes its watchers
func (e *Engine) Delete(ctx context.Context, id string) error {
	if err := e.store.Delete(ctx, id); err != nil {
		return err
	}
	e.hub.closeSession(id)
	return nil
}

// Watch subscribes to recomputed scorecards for a session. The returned
// cancel func must be called when the subscriber goes away.
func (e *Engine) Watch(id string) (<-chan *models.Report, func()) {
	return e.hub.subscribe(id)
}

// CleanupExpired deletes sessions past their TTL and returns the count
func (e *Engine) CleanupExpired(ctx context.Context) (int, error) {
	ids, err := e.store.ExpiredIDs(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, id := range ids {
		if err := e.Delete(ctx, id); err != nil {
			slog.Error("failed to delete expired session", "error", err, "id", id)
			continue
		}
		removed++
	}
	return removed, nil
}

// Ping checks the session store and report repository
func (e *Engine) Ping(ctx context.Context) error {
	if err := e.store.Ping(ctx); err != nil {
		return fmt.Errorf("session store ping failed: %w", err)
	}
	if err := e.repo.Ping(ctx); err != nil {
		return fmt.Errorf("report repository ping failed: %w", err)
	}
	return nil
}

// writableSession loads a session that still accepts changes
func (e *Engine) writableSession(ctx context.Context, id string) (*models.AssessmentSession, error) {
	s, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}
	if s.Status == models.SessionCompleted {
		return nil, ErrSessionFinalized
	}
	if s.IsExpired() {
		return nil, ErrSessionExpired
	}
	return s, nil
}

// synthesize runs the full derivation pipeline for a session's answers
func (e *Engine) synthesize(ctx context.Context, s *models.AssessmentSession) *models.Report {
	domains := e.catalog.Domains()
	gapped := assessment.GappedDomains(domains, s.Answers)

	var notes []string
	for _, ans := range s.Answers {
		if ans.Notes != "" {
			notes = append(notes, ans.Notes)
		}
	}

	resolved, err := e.resolver.Resolve(ctx, gapped, notes)
	if err != nil {
		// resolver already fell back internally; reaching here means even
		// the static catalog failed, which cannot happen today
		slog.Error("recommendation resolution failed", "error", err, "session_id", s.ID)
	}

	return assessment.Synthesize(s.ID, domains, s.Answers, resolved)
}

// broadcast recomputes and pushes the scorecard to watchers
func (e *Engine) broadcast(ctx context.Context, s *models.AssessmentSession) {
	if !e.hub.hasWatchers(s.ID) {
		return
	}
	e.hub.publish(s.ID, e.synthesize(ctx, s))
}
