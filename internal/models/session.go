package models

import "time"

// SessionStatus represents the current state of an assessment session
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"    // answers being recorded
	SessionCompleted SessionStatus = "completed" // finalized into a stored report
	SessionExpired   SessionStatus = "expired"   // TTL elapsed before finalization
)

// AssessmentSession holds the mutable answer state for one respondent.
// Lifetime is one assessment; answers live server-side until the session
// is finalized or expires.
type AssessmentSession struct {
	ID        string            `json:"id"`
	Status    SessionStatus     `json:"status"`
	Answers   map[string]Answer `json:"answers"` // question id -> answer
	ReportID  string            `json:"report_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	ExpiresAt time.Time         `json:"expires_at"`
	CreatedBy string            `json:"created_by,omitempty"`
}

// IsExpired checks if the session TTL has elapsed
func (s *AssessmentSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsTerminal returns true if the session no longer accepts answers
func (s *AssessmentSession) IsTerminal() bool {
	return s.Status == SessionCompleted || s.Status == SessionExpired
}

// AnswerCount returns the number of recorded answers
func (s *AssessmentSession) AnswerCount() int {
	return len(s.Answers)
}

// CreateSessionRequest represents a request to start an assessment
type CreateSessionRequest struct {
	TTL int `json:"ttl,omitempty"` // seconds; server default applies when 0
}

// SubmitAnswerRequest records or overwrites one answer
type SubmitAnswerRequest struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"value"`
	Notes      string      `json:"notes,omitempty"`
}
