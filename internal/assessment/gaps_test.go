package assessment

import (
	"testing"

	"github.com/opsgrade/posture-engine/internal/models"
)

func TestDomainGappedUnanswered(t *testing.T) {
	d := testDomain()
	answers := map[string]models.Answer{
		"q1": answer("q1", models.AnswerYes),
		"q2": answer("q2", models.AnswerYes),
		"q3": answer("q3", models.AnswerYes),
		// q4 left unanswered
	}

	if !DomainGapped(d, answers) {
		t.Error("unanswered question must gap the domain")
	}
}

func TestDomainGappedNo(t *testing.T) {
	d := testDomain()
	answers := map[string]models.Answer{
		"q1": answer("q1", models.AnswerYes),
		"q2": answer("q2", models.AnswerYes),
		"q3": answer("q3", models.AnswerNo),
		"q4": answer("q4", models.AnswerYes),
	}

	if !DomainGapped(d, answers) {
		t.Error("a no answer must gap the domain")
	}
}

func TestDomainGappedPartialWeight(t *testing.T) {
	d := testDomain()

	// partial only on the weight-1 question: no gap
	answers := map[string]models.Answer{
		"q1": answer("q1", models.AnswerYes),
		"q2": answer("q2", models.AnswerYes),
		"q3": answer("q3", models.AnswerPartial),
		"q4": answer("q4", models.AnswerYes),
	}
	if DomainGapped(d, answers) {
		t.Error("partial on a weight-1 question alone should not gap the domain")
	}

	// partial on the weight-2 question: gap
	answers["q2"] = answer("q2", models.AnswerPartial)
	answers["q3"] = answer("q3", models.AnswerYes)
	if !DomainGapped(d, answers) {
		t.Error("partial on a weight>=2 question must gap the domain")
	}
}

func TestDomainGappedAllYes(t *testing.T) {
	d := testDomain()
	answers := map[string]models.Answer{
		"q1": answer("q1", models.AnswerYes),
		"q2": answer("q2", models.AnswerYes),
		"q3": answer("q3", models.AnswerYes),
		"q4": answer("q4", models.AnswerYes),
	}

	if DomainGapped(d, answers) {
		t.Error("fully affirmative domain should not be gapped")
	}
}

func TestDomainGappedNAIsNotAGap(t *testing.T) {
	d := testDomain()
	answers := map[string]models.Answer{
		"q1": answer("q1", models.AnswerNA),
		"q2": answer("q2", models.AnswerYes),
		"q3": answer("q3", models.AnswerYes),
		"q4": answer("q4", models.AnswerYes),
	}

	if DomainGapped(d, answers) {
		t.Error("NA counts as answered and should not gap the domain")
	}
}

func TestGappedDomains(t *testing.T) {
	domains := []models.Domain{
		{ID: "a", Questions: []models.Question{{ID: "a1"}}},
		{ID: "b", Questions: []models.Question{{ID: "b1"}}},
	}
	answers := map[string]models.Answer{
		"a1": answer("a1", models.AnswerYes),
		"b1": answer("b1", models.AnswerNo),
	}

	gapped := GappedDomains(domains, answers)
	if gapped["a"] {
		t.Error("domain a should not be gapped")
	}
	if !gapped["b"] {
		t.Error("domain b should be gapped")
	}
}
