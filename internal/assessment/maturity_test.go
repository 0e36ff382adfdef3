package assessment

import "testing"

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		pct     float64
		ordinal int
		name    string
	}{
		{100, 5, "Optimized"},
		{90, 5, "Optimized"},
		{89.999, 4, "Managed"},
		{75, 4, "Managed"},
		{74.999, 3, "Defined"},
		{60, 3, "Defined"},
		{59.999, 2, "Developing"},
		{40, 2, "Developing"},
		{39.999, 1, "Initial"},
		{0, 1, "Initial"},
	}

	for _, tt := range tests {
		level := Classify(tt.pct)
		if level.Ordinal != tt.ordinal || level.Name != tt.name {
			t.Errorf("Classify(%v) = %d %q, want %d %q", tt.pct, level.Ordinal, level.Name, tt.ordinal, tt.name)
		}
	}
}

func TestClassifyClampsOutOfRange(t *testing.T) {
	if level := Classify(-10); level.Ordinal != 1 {
		t.Errorf("negative input should clamp to Initial, got %q", level.Name)
	}
	if level := Classify(150); level.Ordinal != 5 {
		t.Errorf("input above 100 should clamp to Optimized, got %q", level.Name)
	}
}

func TestClassifyMonotone(t *testing.T) {
	prev := 0
	for pct := 0.0; pct <= 100.0; pct += 0.5 {
		ordinal := Classify(pct).Ordinal
		if ordinal < prev {
			t.Fatalf("ordinal decreased at %v%%: %d -> %d", pct, prev, ordinal)
		}
		prev = ordinal
	}
}

func TestLevels(t *testing.T) {
	levels := Levels()
	if len(levels) != 5 {
		t.Fatalf("expected 5 levels, got %d", len(levels))
	}
	if levels[0].Ordinal != 5 || levels[4].Ordinal != 1 {
		t.Errorf("levels must be in descending order, got %d..%d", levels[0].Ordinal, levels[4].Ordinal)
	}
}
