package assessment

import "github.com/opsgrade/posture-engine/internal/models"

// The five-level maturity scale. Thresholds are checked in descending
// order; the first match wins, so the mapping is total over [0,100] with
// no gaps and no overlaps.
var maturityLevels = []struct {
	threshold float64
	level     models.MaturityLevel
}{
	{90, models.MaturityLevel{Ordinal: 5, Name: "Optimized", Description: "Security practices are continuously measured and improved.", Color: "green"}},
	{75, models.MaturityLevel{Ordinal: 4, Name: "Managed", Description: "Security practices are measured and controlled.", Color: "teal"}},
	{60, models.MaturityLevel{Ordinal: 3, Name: "Defined", Description: "Security practices are documented and standardized.", Color: "yellow"}},
	{40, models.MaturityLevel{Ordinal: 2, Name: "Developing", Description: "Security practices exist but are inconsistent and reactive.", Color: "orange"}},
	{0, models.MaturityLevel{Ordinal: 1, Name: "Initial", Description: "Security practices are ad hoc or absent.", Color: "red"}},
}

// Classify maps a percentage to its maturity level. Out-of-range input is
// clamped, never rejected.
func Classify(pct float64) models.MaturityLevel {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	for _, entry := range maturityLevels {
		if pct >= entry.threshold {
			return entry.level
		}
	}
	return maturityLevels[len(maturityLevels)-1].level
}

// Levels returns the full scale in descending order, for presentation
func Levels() []models.MaturityLevel {
	out := make([]models.MaturityLevel, 0, len(maturityLevels))
	for _, entry := range maturityLevels {
		out = append(out, entry.level)
	}
	return out
}
