package session

import (
	"context"
	"sync"

	"github.com/opsgrade/posture-engine/internal/models"
)

// Store holds live answer state for in-progress assessments. State lives
// for one session and is dropped after finalization or expiry; finished
// reports go to the Postgres repository instead.
type Store interface {
	// Put creates or overwrites a session
	Put(ctx context.Context, s *models.AssessmentSession) error

	// Get returns a session, or nil when absent
	Get(ctx context.Context, id string) (*models.AssessmentSession, error)

	// Delete removes a session; deleting an absent session is not an error
	Delete(ctx context.Context, id string) error

	// ExpiredIDs returns the IDs of sessions past their TTL
	ExpiredIDs(ctx context.Context) ([]string, error)

	// Ping checks store availability
	Ping(ctx context.Context) error
}

// MemoryStore is the default single-node store
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.AssessmentSession
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.AssessmentSession)}
}

// Put stores a deep-enough copy so callers can't mutate shared state
func (m *MemoryStore) Put(ctx context.Context, s *models.AssessmentSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = copySession(s)
	return nil
}

// Get returns a copy of the stored session
func (m *MemoryStore) Get(ctx context.Context, id string) (*models.AssessmentSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return copySession(s), nil
}

// Delete removes a session
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// ExpiredIDs scans for sessions past their TTL
func (m *MemoryStore) ExpiredIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var expired []string
	for id, s := range m.sessions {
		if s.IsExpired() {
			expired = append(expired, id)
		}
	}
	return expired, nil
}

// Ping always succeeds for the in-memory store
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func copySession(s *models.AssessmentSession) *models.AssessmentSession {
	out := *s
	out.Answers = make(map[string]models.Answer, len(s.Answers))
	for k, v := range s.Answers {
		out.Answers[k] = v
	}
	return &out
}
