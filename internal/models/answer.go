package models

// AnswerValue is the closed set of responses a question accepts
type AnswerValue string

const (
	AnswerYes     AnswerValue = "yes"
	AnswerNo      AnswerValue = "no"
	AnswerPartial AnswerValue = "partial"
	AnswerNA      AnswerValue = "na"
)

// Valid reports whether v is one of the four accepted response values
func (v AnswerValue) Valid() bool {
	switch v {
	case AnswerYes, AnswerNo, AnswerPartial, AnswerNA:
		return true
	}
	return false
}

// Answer associates a question with a response and optional free-text notes.
// At most one Answer exists per question per session; an absent answer is
// not the same as "no".
type Answer struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"value"`
	Notes      string      `json:"notes,omitempty"`
}
