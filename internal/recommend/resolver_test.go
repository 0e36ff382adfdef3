package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/opsgrade/posture-engine/internal/models"
)

// fakeProvider is a scripted Provider for resolver tests
type fakeProvider struct {
	recs []models.Recommendation
	err  error
}

func (f *fakeProvider) Active(ctx context.Context) ([]models.Recommendation, error) {
	return f.recs, f.err
}

func (f *fakeProvider) Source() string { return "fake" }

func TestResolveFiltersByGappedDomains(t *testing.T) {
	primary := &fakeProvider{recs: []models.Recommendation{
		{ID: "a-1", Domain: "a"},
		{ID: "b-1", Domain: "b"},
		{ID: "c-1", Domain: "c"},
	}}
	r := NewResolver(primary, StaticProvider{})

	resolved, err := r.Resolve(context.Background(), map[string]bool{"a": true, "c": true}, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(resolved))
	}
	if resolved[0].ID != "a-1" || resolved[1].ID != "c-1" {
		t.Errorf("unexpected resolution order: %+v", resolved)
	}
}

func TestResolveFallsBackOnError(t *testing.T) {
	primary := &fakeProvider{err: errors.New("store unreachable")}
	fallback := &fakeProvider{recs: []models.Recommendation{{ID: "fb-1", Domain: "a"}}}
	r := NewResolver(primary, fallback)

	resolved, err := r.Resolve(context.Background(), map[string]bool{"a": true}, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(resolved) != 1 || resolved[0].ID != "fb-1" {
		t.Errorf("expected fallback catalog, got %+v", resolved)
	}
}

func TestResolveFallsBackOnEmptyPrimary(t *testing.T) {
	primary := &fakeProvider{}
	fallback := &fakeProvider{recs: []models.Recommendation{{ID: "fb-1", Domain: "a"}}}
	r := NewResolver(primary, fallback)

	resolved, err := r.Resolve(context.Background(), map[string]bool{"a": true}, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(resolved) != 1 || resolved[0].ID != "fb-1" {
		t.Errorf("zero primary entries should fall back, got %+v", resolved)
	}
}

func TestResolveNeverMergesProviders(t *testing.T) {
	primary := &fakeProvider{recs: []models.Recommendation{{ID: "p-1", Domain: "a"}}}
	fallback := &fakeProvider{recs: []models.Recommendation{{ID: "fb-1", Domain: "a"}}}
	r := NewResolver(primary, fallback)

	resolved, err := r.Resolve(context.Background(), map[string]bool{"a": true}, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(resolved) != 1 || resolved[0].ID != "p-1" {
		t.Errorf("primary must win outright, got %+v", resolved)
	}
}

func TestResolveNilPrimaryUsesFallback(t *testing.T) {
	r := NewResolver(nil, StaticProvider{})

	resolved, err := r.Resolve(context.Background(), map[string]bool{"ops": true}, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(resolved) == 0 {
		t.Fatal("expected seed catalog entries for ops domain")
	}
	for _, rec := range resolved {
		if rec.Domain != "ops" {
			t.Errorf("non-ops recommendation resolved: %+v", rec)
		}
	}
}

func TestEmptyPrimaryMatchesStaticByIdentifier(t *testing.T) {
	gapped := map[string]bool{"iam": true, "network": true}

	r := NewResolver(&fakeProvider{}, StaticProvider{})
	resolved, err := r.Resolve(context.Background(), gapped, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := make(map[string]bool)
	for _, rec := range SeedCatalog() {
		if gapped[rec.Domain] {
			want[rec.ID] = true
		}
	}

	got := make(map[string]bool)
	for _, rec := range resolved {
		got[rec.ID] = true
	}

	if len(got) != len(want) {
		t.Fatalf("identifier sets differ: got %v, want %v", got, want)
	}
	for id := range want {
		if !got[id] {
			t.Errorf("missing %s from fallback resolution", id)
		}
	}
}

func TestSIEMOverrideFromNotes(t *testing.T) {
	r := NewResolver(nil, StaticProvider{})
	notes := []string{
		"We already use Azure AD for identity.",
		"Defender is deployed on endpoints.",
	}

	resolved, err := r.Resolve(context.Background(), map[string]bool{"ops": true}, notes)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(resolved) == 0 {
		t.Fatal("expected ops recommendations")
	}

	// The rewritten entry moves to the front, once, regardless of how
	// many notes matched.
	first := resolved[0]
	if first.ID != "ops-siem" {
		t.Fatalf("expected ops-siem first, got %q", first.ID)
	}
	if !strings.Contains(first.Title, "Sentinel") {
		t.Errorf("expected Sentinel title, got %q", first.Title)
	}
	if first.Priority != models.PriorityHigh {
		t.Errorf("expected high priority, got %q", first.Priority)
	}

	wantTech := []string{"Microsoft Sentinel", "Microsoft Defender XDR", "Azure Monitor", "Azure Log Analytics"}
	if len(first.Technologies) != len(wantTech) {
		t.Fatalf("expected %d technologies, got %v", len(wantTech), first.Technologies)
	}
	for i, tech := range wantTech {
		if first.Technologies[i] != tech {
			t.Errorf("technology %d: expected %q, got %q", i, tech, first.Technologies[i])
		}
	}

	siemCount := 0
	for _, rec := range resolved {
		if rec.ID == "ops-siem" {
			siemCount++
		}
	}
	if siemCount != 1 {
		t.Errorf("ops-siem must appear exactly once, got %d", siemCount)
	}
}

func TestSIEMOverrideRequiresKeyword(t *testing.T) {
	r := NewResolver(nil, StaticProvider{})

	resolved, err := r.Resolve(context.Background(), map[string]bool{"ops": true}, []string{"we run splunk already"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	for _, rec := range resolved {
		if rec.ID == "ops-siem" && strings.Contains(rec.Title, "Sentinel") {
			t.Error("override applied without a Microsoft-stack keyword")
		}
	}
}

func TestSeedCatalogIntegrity(t *testing.T) {
	seed := SeedCatalog()
	if len(seed) == 0 {
		t.Fatal("seed catalog is empty")
	}

	seen := make(map[string]bool)
	for _, rec := range seed {
		if rec.ID == "" || rec.Title == "" || rec.Description == "" || rec.Domain == "" {
			t.Errorf("incomplete seed entry: %+v", rec)
		}
		if !rec.Priority.Valid() {
			t.Errorf("seed entry %s has invalid priority %q", rec.ID, rec.Priority)
		}
		if seen[rec.ID] {
			t.Errorf("duplicate seed id %s", rec.ID)
		}
		seen[rec.ID] = true
	}

	if !seen["ops-siem"] {
		t.Error("seed catalog must contain ops-siem for the contextual override")
	}
}
