package assessment

import (
	"sort"
	"time"

	"github.com/opsgrade/posture-engine/internal/models"
)

// BuildDomainResults scores every catalog domain against the answer map
// and classifies each result.
func BuildDomainResults(domains []models.Domain, answers map[string]models.Answer) []models.DomainResult {
	results := make([]models.DomainResult, 0, len(domains))

	for i := range domains {
		d := &domains[i]
		score := ScoreDomain(d, answers)

		questionScores := make(map[string]int)
		notes := make(map[string]string)
		for _, q := range d.Questions {
			ans, ok := answers[q.ID]
			if !ok {
				continue
			}
			if s, scored := QuestionScore(ans.Value); scored {
				questionScores[q.ID] = s
			}
			if ans.Notes != "" {
				notes[q.ID] = ans.Notes
			}
		}

		results = append(results, models.DomainResult{
			DomainID:       d.ID,
			DomainName:     d.Name,
			Achieved:       score.Achieved,
			MaxScore:       score.TotalWeight,
			Percentage:     score.Percentage,
			Level:          Classify(score.Percentage),
			QuestionScores: questionScores,
			Notes:          notes,
			Gapped:         DomainGapped(d, answers),
		})
	}

	return results
}

// Synthesize assembles the final report view model: domain results, the
// unweighted overall mean, insights, and the merged recommendation list
// (resolved + contextual) ordered by priority rank descending, stable.
func Synthesize(sessionID string, domains []models.Domain, answers map[string]models.Answer, resolved []models.Recommendation) *models.Report {
	results := BuildDomainResults(domains, answers)
	insights := DeriveInsights(domains, results)

	var sum float64
	for _, r := range results {
		sum += r.Percentage
	}
	overall := 0.0
	if len(results) > 0 {
		overall = sum / float64(len(results))
	}

	recs := make([]models.Recommendation, 0, len(resolved))
	recs = append(recs, resolved...)
	recs = append(recs, ContextualRecommendations(insights)...)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() > recs[j].Priority.Rank()
	})

	attachDomainRecommendations(results, recs)

	return &models.Report{
		SessionID:       sessionID,
		GeneratedAt:     time.Now().UTC(),
		OverallScore:    overall,
		OverallLevel:    Classify(overall),
		Domains:         results,
		Recommendations: recs,
		Insights:        insights,
	}
}

// attachDomainRecommendations fills each domain result's recommendations
// slot with the non-contextual entries owned by that domain.
func attachDomainRecommendations(results []models.DomainResult, recs []models.Recommendation) {
	byDomain := make(map[string][]models.Recommendation)
	for _, rec := range recs {
		if rec.Contextual || rec.Domain == "" {
			continue
		}
		byDomain[rec.Domain] = append(byDomain[rec.Domain], rec)
	}
	for i := range results {
		results[i].Recommendations = byDomain[results[i].DomainID]
	}
}
