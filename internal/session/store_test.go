package session

import (
	"context"
	"testing"
	"time"

	"github.com/opsgrade/posture-engine/internal/models"
)

func TestMemoryStoreCopiesOnPutAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := &models.AssessmentSession{
		ID:        "s1",
		Status:    models.SessionActive,
		Answers:   map[string]models.Answer{},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Mutating the caller's copy must not leak into the store
	s.Answers["q1"] = models.Answer{QuestionID: "q1", Value: models.AnswerYes}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Answers) != 0 {
		t.Errorf("store must hold its own copy, got %d answers", len(got.Answers))
	}

	// And mutating a Get result must not change stored state
	got.Answers["q2"] = models.Answer{QuestionID: "q2", Value: models.AnswerNo}
	again, _ := store.Get(ctx, "s1")
	if len(again.Answers) != 0 {
		t.Errorf("Get must return a copy, got %d answers", len(again.Answers))
	}
}

func TestMemoryStoreGetAbsent(t *testing.T) {
	store := NewMemoryStore()
	got, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("absent session must be nil, got %+v", got)
	}
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put(ctx, &models.AssessmentSession{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)})
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Errorf("deleting absent session must not error, got %v", err)
	}
}

func TestMemoryStoreExpiredIDs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put(ctx, &models.AssessmentSession{ID: "old", ExpiresAt: time.Now().Add(-time.Minute)})
	store.Put(ctx, &models.AssessmentSession{ID: "new", ExpiresAt: time.Now().Add(time.Hour)})

	expired, err := store.ExpiredIDs(ctx)
	if err != nil {
		t.Fatalf("ExpiredIDs failed: %v", err)
	}
	if len(expired) != 1 || expired[0] != "old" {
		t.Errorf("expected [old], got %v", expired)
	}
}
