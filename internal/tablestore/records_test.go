package tablestore

import (
	"testing"

	"github.com/opsgrade/posture-engine/internal/models"
)

func TestTechnologiesRoundTrip(t *testing.T) {
	techs := []string{"Splunk", "Elastic Security", "Wazuh"}

	encoded, err := EncodeTechnologies(techs)
	if err != nil {
		t.Fatalf("EncodeTechnologies failed: %v", err)
	}
	if encoded != `["Splunk","Elastic Security","Wazuh"]` {
		t.Errorf("unexpected encoding %q", encoded)
	}

	decoded := DecodeTechnologies(encoded)
	if len(decoded) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(decoded))
	}
	for i, tech := range techs {
		if decoded[i] != tech {
			t.Errorf("entry %d: expected %q, got %q", i, tech, decoded[i])
		}
	}
}

func TestEncodeTechnologiesEmpty(t *testing.T) {
	encoded, err := EncodeTechnologies(nil)
	if err != nil {
		t.Fatalf("EncodeTechnologies failed: %v", err)
	}
	if encoded != "" {
		t.Errorf("empty list must encode to empty string, got %q", encoded)
	}
}

func TestDecodeTechnologiesMalformed(t *testing.T) {
	cases := []string{"not json", "{", `{"a":1}`, "[1,2,3]"}
	for _, in := range cases {
		if got := DecodeTechnologies(in); got != nil {
			t.Errorf("DecodeTechnologies(%q) should degrade to nil, got %v", in, got)
		}
	}
	if got := DecodeTechnologies(""); got != nil {
		t.Errorf("empty string should decode to nil, got %v", got)
	}
}

func TestRecordModelConversion(t *testing.T) {
	rec := models.Recommendation{
		ID:           "ops-siem",
		Title:        "Deploy SIEM",
		Description:  "Aggregate logs.",
		Priority:     models.PriorityMedium,
		Domain:       "ops",
		Technologies: []string{"Splunk"},
		Effort:       "8-12 weeks",
	}

	record, err := RecordFromModel(rec, "row-1", true)
	if err != nil {
		t.Fatalf("RecordFromModel failed: %v", err)
	}
	if record.ID != "row-1" || record.RecommendationID != "ops-siem" {
		t.Errorf("unexpected identifiers: %+v", record)
	}
	if !record.IsActive {
		t.Error("expected active record")
	}

	back := record.ToModel()
	if back.ID != rec.ID || back.Title != rec.Title || back.Priority != rec.Priority {
		t.Errorf("round trip mismatch: %+v vs %+v", back, rec)
	}
	if len(back.Technologies) != 1 || back.Technologies[0] != "Splunk" {
		t.Errorf("technologies lost in round trip: %v", back.Technologies)
	}
}
