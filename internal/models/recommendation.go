package models

// Priority ranks a recommendation for remediation ordering
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank maps a priority to its sort weight (high=3 ... low=1, unknown=0)
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Recommendation is a remediation suggestion tied to a domain. Catalog
// entries are admin-managed reference data; contextual entries are
// synthesized fresh per report from note-text heuristics.
type Recommendation struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Priority     Priority `json:"priority"`
	Domain       string   `json:"domain"`
	Technologies []string `json:"technologies,omitempty"`
	Effort       string   `json:"effort,omitempty"`
	Contextual   bool     `json:"contextual,omitempty"`
	Rationale    string   `json:"rationale,omitempty"` // set on contextual entries only
}
