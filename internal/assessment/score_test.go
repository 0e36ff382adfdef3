package assessment

import (
	"math"
	"testing"

	"github.com/opsgrade/posture-engine/internal/models"
)

func testDomain() *models.Domain {
	return &models.Domain{
		ID:   "test",
		Name: "Test Domain",
		Questions: []models.Question{
			{ID: "q1", Prompt: "First", Weight: 3},
			{ID: "q2", Prompt: "Second", Weight: 2},
			{ID: "q3", Prompt: "Third", Weight: 1},
			{ID: "q4", Prompt: "Fourth"}, // defaults to weight 1
		},
	}
}

func answer(id string, v models.AnswerValue) models.Answer {
	return models.Answer{QuestionID: id, Value: v}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreDomainAllYes(t *testing.T) {
	d := testDomain()
	answers := map[string]models.Answer{
		"q1": answer("q1", models.AnswerYes),
		"q2": answer("q2", models.AnswerYes),
		"q3": answer("q3", models.AnswerYes),
		"q4": answer("q4", models.AnswerYes),
	}

	score := ScoreDomain(d, answers)
	if !almostEqual(score.Achieved, 7) {
		t.Errorf("expected achieved 7, got %v", score.Achieved)
	}
	if !almostEqual(score.TotalWeight, 7) {
		t.Errorf("expected total weight 7, got %v", score.TotalWeight)
	}
	if !almostEqual(score.Percentage, 100) {
		t.Errorf("expected 100%%, got %v", score.Percentage)
	}
}

func TestScoreDomainUnanswered(t *testing.T) {
	d := testDomain()

	score := ScoreDomain(d, map[string]models.Answer{})
	if !almostEqual(score.Achieved, 0) {
		t.Errorf("expected achieved 0, got %v", score.Achieved)
	}
	if !almostEqual(score.TotalWeight, 7) {
		t.Errorf("unanswered questions must stay in the denominator, got %v", score.TotalWeight)
	}
	if !almostEqual(score.Percentage, 0) {
		t.Errorf("expected 0%%, got %v", score.Percentage)
	}
}

func TestScoreDomainPartialHalvesWeight(t *testing.T) {
	d := testDomain()
	answers := map[string]models.Answer{
		"q1": answer("q1", models.AnswerPartial),
	}

	score := ScoreDomain(d, answers)
	if !almostEqual(score.Achieved, 1.5) {
		t.Errorf("expected achieved 1.5, got %v", score.Achieved)
	}
}

func TestScoreDomainNARemovesWeight(t *testing.T) {
	d := testDomain()
	answers := map[string]models.Answer{
		"q1": answer("q1", models.AnswerNA),
		"q2": answer("q2", models.AnswerYes),
		"q3": answer("q3", models.AnswerYes),
		"q4": answer("q4", models.AnswerYes),
	}

	score := ScoreDomain(d, answers)
	if !almostEqual(score.TotalWeight, 4) {
		t.Errorf("NA weight must leave the denominator, got %v", score.TotalWeight)
	}
	if !almostEqual(score.Percentage, 100) {
		t.Errorf("remaining questions all yes should be 100%%, got %v", score.Percentage)
	}
}

func TestScoreDomainAllNA(t *testing.T) {
	d := testDomain()
	answers := map[string]models.Answer{
		"q1": answer("q1", models.AnswerNA),
		"q2": answer("q2", models.AnswerNA),
		"q3": answer("q3", models.AnswerNA),
		"q4": answer("q4", models.AnswerNA),
	}

	score := ScoreDomain(d, answers)
	if !almostEqual(score.TotalWeight, 0) {
		t.Errorf("expected zero total weight, got %v", score.TotalWeight)
	}
	if !almostEqual(score.Percentage, 0) {
		t.Errorf("all-NA domain must score 0, not NaN, got %v", score.Percentage)
	}
}

func TestScoreDomainNoQuestions(t *testing.T) {
	d := &models.Domain{ID: "empty", Name: "Empty"}
	score := ScoreDomain(d, nil)
	if !almostEqual(score.Percentage, 0) {
		t.Errorf("expected 0%% for empty domain, got %v", score.Percentage)
	}
}

func TestScoreDomainMixed(t *testing.T) {
	// yes on w3, partial on w2, no on w1, q4 unanswered
	d := testDomain()
	answers := map[string]models.Answer{
		"q1": answer("q1", models.AnswerYes),
		"q2": answer("q2", models.AnswerPartial),
		"q3": answer("q3", models.AnswerNo),
	}

	score := ScoreDomain(d, answers)
	if !almostEqual(score.Achieved, 4) {
		t.Errorf("expected achieved 4, got %v", score.Achieved)
	}
	if !almostEqual(score.TotalWeight, 7) {
		t.Errorf("expected total weight 7, got %v", score.TotalWeight)
	}
	want := 4.0 / 7.0 * 100
	if !almostEqual(score.Percentage, want) {
		t.Errorf("expected %v%%, got %v", want, score.Percentage)
	}
}

func TestQuestionScore(t *testing.T) {
	tests := []struct {
		value models.AnswerValue
		score int
		ok    bool
	}{
		{models.AnswerYes, 3, true},
		{models.AnswerPartial, 1, true},
		{models.AnswerNo, 0, true},
		{models.AnswerNA, 0, false},
		{models.AnswerValue("bogus"), 0, false},
	}

	for _, tt := range tests {
		score, ok := QuestionScore(tt.value)
		if score != tt.score || ok != tt.ok {
			t.Errorf("QuestionScore(%q) = (%d, %v), want (%d, %v)", tt.value, score, ok, tt.score, tt.ok)
		}
	}
}
