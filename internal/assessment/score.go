// Package assessment implements the scoring, classification, gap analysis,
// and note-text enrichment that turn a set of answers into a maturity
// report. Everything here is pure computation: no I/O, no errors, every
// numeric path guarded against division by zero and clamped.
package assessment

import "github.com/opsgrade/posture-engine/internal/models"

// Answer contribution factors against a question's weight
const (
	yesFactor     = 1.0
	partialFactor = 0.5
)

// ScoreDomain computes the weighted score for one domain from the given
// answers (keyed by question ID; a subset, possibly empty).
//
// N/A answers are not applicable: their weight is removed from the
// denominator as well as the numerator. Unanswered and "no" questions
// contribute zero against the full denominator.
func ScoreDomain(domain *models.Domain, answers map[string]models.Answer) models.Score {
	var achieved, totalWeight float64

	for _, q := range domain.Questions {
		weight := float64(q.EffectiveWeight())

		ans, answered := answers[q.ID]
		if answered && ans.Value == models.AnswerNA {
			continue
		}

		totalWeight += weight
		if !answered {
			continue
		}

		switch ans.Value {
		case models.AnswerYes:
			achieved += weight * yesFactor
		case models.AnswerPartial:
			achieved += weight * partialFactor
		}
	}

	return models.Score{
		Achieved:    achieved,
		TotalWeight: totalWeight,
		Percentage:  percentage(achieved, totalWeight),
	}
}

// percentage divides with a zero guard and clamps to [0,100]
func percentage(achieved, total float64) float64 {
	if total <= 0 {
		return 0
	}
	pct := achieved / total * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// QuestionScore maps an answer value onto the 0-3 per-question scale used
// in domain results. N/A returns ok=false: it carries no score at all.
func QuestionScore(v models.AnswerValue) (int, bool) {
	switch v {
	case models.AnswerYes:
		return 3, true
	case models.AnswerPartial:
		return 1, true
	case models.AnswerNo:
		return 0, true
	}
	return 0, false
}
