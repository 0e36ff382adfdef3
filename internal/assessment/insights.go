package assessment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/opsgrade/posture-engine/internal/models"
)

// Thresholds for score-derived insight classes
const (
	riskAreaBelow          = 50.0
	criticalRiskBelow      = 25.0
	strengthAreaFrom       = 80.0
	lowScoreBelow          = 2 // on the 0-3 per-question scale
	maxImplementationGaps  = 10
	minRiskAreasForProgram = 3
)

// concernThemes is the fixed taxonomy matched case-insensitively against
// note text. Kept as data so the taxonomy extends without touching control
// flow.
var concernThemes = []struct {
	theme    string
	keywords []string
}{
	{"Resource Constraints", []string{"budget", "resource", "staff", "time", "limited"}},
	{"Technical Debt", []string{"legacy", "old", "outdated", "upgrade", "replace"}},
	{"Training Needs", []string{"train", "education", "skill", "knowledge", "awareness"}},
	{"Process Gaps", []string{"process", "procedure", "policy", "documentation", "workflow"}},
	{"Compliance Concerns", []string{"compliance", "regulation", "audit", "requirement", "standard"}},
}

const resourceConstraintsTheme = "Resource Constraints"

// DeriveInsights scans the per-domain results for concern themes, risk and
// strength areas, and individual low-scoring answers. The catalog domains
// provide question order and prompt text for gap entries.
func DeriveInsights(domains []models.Domain, results []models.DomainResult) models.Insights {
	insights := models.Insights{
		CommonConcerns: extractConcerns(collectNotes(results)),
	}

	for _, r := range results {
		switch {
		case r.Percentage < riskAreaBelow:
			severity := "high"
			if r.Percentage < criticalRiskBelow {
				severity = "critical"
			}
			insights.RiskAreas = append(insights.RiskAreas, models.RiskArea{
				DomainID:   r.DomainID,
				DomainName: r.DomainName,
				Percentage: r.Percentage,
				Severity:   severity,
			})
		case r.Percentage >= strengthAreaFrom:
			insights.StrengthAreas = append(insights.StrengthAreas, models.StrengthArea{
				DomainID:   r.DomainID,
				DomainName: r.DomainName,
				Percentage: r.Percentage,
			})
		}
	}

	insights.ImplementationGaps = implementationGaps(domains, results)
	return insights
}

// collectNotes flattens all recorded note texts across domains
func collectNotes(results []models.DomainResult) []string {
	var notes []string
	for _, r := range results {
		for _, note := range r.Notes {
			if strings.TrimSpace(note) != "" {
				notes = append(notes, note)
			}
		}
	}
	return notes
}

// extractConcerns counts, per theme, how many distinct notes match at
// least one keyword. Themes with zero matches are omitted.
func extractConcerns(notes []string) []models.ConcernTheme {
	var concerns []models.ConcernTheme
	for _, entry := range concernThemes {
		freq := 0
		for _, note := range notes {
			lower := strings.ToLower(note)
			for _, kw := range entry.keywords {
				if strings.Contains(lower, kw) {
					freq++
					break
				}
			}
		}
		if freq > 0 {
			concerns = append(concerns, models.ConcernTheme{Theme: entry.theme, Frequency: freq})
		}
	}
	return concerns
}

// implementationGaps picks individual answers scoring below 2, capped at
// 10 entries in catalog order.
func implementationGaps(domains []models.Domain, results []models.DomainResult) []models.ImplementationGap {
	scores := make(map[string]map[string]int, len(results))
	for _, r := range results {
		scores[r.DomainID] = r.QuestionScores
	}

	var gaps []models.ImplementationGap
	for i := range domains {
		d := &domains[i]
		domainScores := scores[d.ID]
		if domainScores == nil {
			continue
		}
		for _, q := range d.Questions {
			score, answered := domainScores[q.ID]
			if !answered || score >= lowScoreBelow {
				continue
			}
			gaps = append(gaps, models.ImplementationGap{
				DomainID:   d.ID,
				QuestionID: q.ID,
				Prompt:     q.Prompt,
				Score:      score,
			})
			if len(gaps) >= maxImplementationGaps {
				return gaps
			}
		}
	}
	return gaps
}

// ContextualRecommendations synthesizes additional recommendations from
// the derived insights. Additive to the domain-derived list, tagged as
// contextual for downstream display.
func ContextualRecommendations(insights models.Insights) []models.Recommendation {
	var recs []models.Recommendation

	for _, concern := range insights.CommonConcerns {
		if concern.Theme != resourceConstraintsTheme {
			continue
		}
		recs = append(recs, models.Recommendation{
			ID:       "ctx-" + uuid.New().String()[:8],
			Title:    "Resource Optimization Strategy",
			Priority: models.PriorityHigh,
			Description: "1. Consolidate overlapping security tooling to reduce licensing and operational load. " +
				"2. Adopt managed or co-managed services for monitoring functions the team cannot staff. " +
				"3. Automate recurring tasks (patching, access reviews, evidence collection). " +
				"4. Build a risk-ranked roadmap so limited budget lands on the highest-impact controls first.",
			Rationale:  fmt.Sprintf("Resource constraints were mentioned in %d assessment note(s).", concern.Frequency),
			Contextual: true,
		})
		break
	}

	if len(insights.RiskAreas) >= minRiskAreasForProgram {
		recs = append(recs, models.Recommendation{
			ID:       "ctx-" + uuid.New().String()[:8],
			Title:    "Comprehensive Risk Mitigation Program",
			Priority: models.PriorityHigh,
			Description: "Multiple domains scored in the risk band. Stand up a cross-domain remediation program " +
				"with executive sponsorship: sequence the risk areas by severity, assign owners and target dates, " +
				"and review progress monthly rather than remediating each domain in isolation.",
			Rationale:  fmt.Sprintf("%d domains scored below %d%%.", len(insights.RiskAreas), int(riskAreaBelow)),
			Contextual: true,
		})
	}

	return recs
}
