package assessment

import "github.com/opsgrade/posture-engine/internal/models"

// gapPartialWeight is the minimum question weight at which a "partial"
// answer flags its domain. A partial answer on a low-weight question does
// not by itself trigger a gap.
const gapPartialWeight = 2

// DomainGapped reports whether a single domain requires remediation: at
// least one question unanswered, answered "no", or answered "partial" on a
// question of weight >= 2.
func DomainGapped(domain *models.Domain, answers map[string]models.Answer) bool {
	for _, q := range domain.Questions {
		ans, answered := answers[q.ID]
		if !answered {
			return true
		}
		switch ans.Value {
		case models.AnswerNo:
			return true
		case models.AnswerPartial:
			if q.EffectiveWeight() >= gapPartialWeight {
				return true
			}
		}
	}
	return false
}

// GappedDomains returns the set of domain IDs requiring remediation across
// the whole catalog.
func GappedDomains(domains []models.Domain, answers map[string]models.Answer) map[string]bool {
	gapped := make(map[string]bool)
	for i := range domains {
		if DomainGapped(&domains[i], answers) {
			gapped[domains[i].ID] = true
		}
	}
	return gapped
}
