package models

import "time"

// MaturityLevel is one of five ordinal labels summarizing a percentage
// score. Fixed enumeration; selected by threshold lookup, never derived
// per session.
type MaturityLevel struct {
	Ordinal     int    `json:"ordinal"` // 1..5
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Score is the raw output of the scoring engine for one domain.
//
// N/A answers are excluded from both Achieved and TotalWeight (they reduce
// the denominator). Unanswered and "no" questions contribute zero against
// the full denominator.
type Score struct {
	Achieved    float64 `json:"achieved"`
	TotalWeight float64 `json:"total_weight"`
	Percentage  float64 `json:"percentage"` // clamped to [0,100]; 0 when TotalWeight is 0
}

// DomainResult holds the scored outcome for a single domain. Created once
// per domain and immutable thereafter within a session; the
// Recommendations slot is filled downstream by the resolver.
type DomainResult struct {
	DomainID        string            `json:"domain_id"`
	DomainName      string            `json:"domain_name"`
	Achieved        float64           `json:"achieved"`
	MaxScore        float64           `json:"max_score"`
	Percentage      float64           `json:"percentage"`
	Level           MaturityLevel     `json:"level"`
	QuestionScores  map[string]int    `json:"question_scores"` // question id -> 0..3; na and unanswered absent
	Notes           map[string]string `json:"notes,omitempty"` // question id -> note text
	Gapped          bool              `json:"gapped"`
	Recommendations []Recommendation  `json:"recommendations,omitempty"`
}

// ConcernTheme is a keyword-derived theme with the number of distinct
// notes that matched it.
type ConcernTheme struct {
	Theme     string `json:"theme"`
	Frequency int    `json:"frequency"`
}

// RiskArea flags a domain scoring below 50 percent
type RiskArea struct {
	DomainID   string  `json:"domain_id"`
	DomainName string  `json:"domain_name"`
	Percentage float64 `json:"percentage"`
	Severity   string  `json:"severity"` // "critical" (<25) or "high"
}

// StrengthArea flags a domain scoring at or above 80 percent
type StrengthArea struct {
	DomainID   string  `json:"domain_id"`
	DomainName string  `json:"domain_name"`
	Percentage float64 `json:"percentage"`
}

// ImplementationGap points at an individual low-scoring answer
type ImplementationGap struct {
	DomainID   string `json:"domain_id"`
	QuestionID string `json:"question_id"`
	Prompt     string `json:"prompt"`
	Score      int    `json:"score"` // 0..3 scale, always < 2 here
}

// Insights is the output of the heuristic enrichment engine
type Insights struct {
	CommonConcerns     []ConcernTheme      `json:"common_concerns"`
	RiskAreas          []RiskArea          `json:"risk_areas"`
	StrengthAreas      []StrengthArea      `json:"strength_areas"`
	ImplementationGaps []ImplementationGap `json:"implementation_gaps"`
}

// Report is the final view model consumed by presentation layers. Overall
// score is the unweighted arithmetic mean of domain percentages.
type Report struct {
	ID              string           `json:"id,omitempty"`
	SessionID       string           `json:"session_id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	OverallScore    float64          `json:"overall_score"`
	OverallLevel    MaturityLevel    `json:"overall_level"`
	Domains         []DomainResult   `json:"domains"`
	Recommendations []Recommendation `json:"recommendations"`
	Insights        Insights         `json:"insights"`
	CreatedBy       string           `json:"created_by,omitempty"`
}
