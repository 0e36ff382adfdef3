package recommend

import (
	"context"
	"log/slog"
	"strings"

	"github.com/opsgrade/posture-engine/internal/models"
)

// siemRecommendationID is the catalog entry rewritten by the vendor
// contextual override.
const siemRecommendationID = "ops-siem"

// sentinelKeywords trigger the Microsoft-stack SIEM override when found in
// any note text (case-insensitive substring match).
var sentinelKeywords = []string{"defender", "azure"}

// Resolver maps gapped domains to catalog recommendations. The primary
// provider is preferred; the fallback is used only when the primary errors
// or yields zero entries. Never a merge of both.
type Resolver struct {
	primary  Provider
	fallback Provider
}

// NewResolver builds a resolver. primary may be nil, in which case only
// the fallback is consulted.
func NewResolver(primary, fallback Provider) *Resolver {
	return &Resolver{primary: primary, fallback: fallback}
}

// Resolve returns the catalog recommendations owned by gapped domains,
// with the contextual SIEM override applied against the session's note
// texts.
func (r *Resolver) Resolve(ctx context.Context, gapped map[string]bool, notes []string) ([]models.Recommendation, error) {
	catalog, err := r.catalog(ctx)
	if err != nil {
		return nil, err
	}

	var resolved []models.Recommendation
	for _, rec := range catalog {
		if gapped[rec.Domain] {
			resolved = append(resolved, rec)
		}
	}

	if mentionsMicrosoftStack(notes) {
		resolved = applySIEMOverride(resolved)
	}

	return resolved, nil
}

// catalog picks the provider-of-record, falling back on error or an empty
// result set.
func (r *Resolver) catalog(ctx context.Context) ([]models.Recommendation, error) {
	if r.primary != nil {
		recs, err := r.primary.Active(ctx)
		if err != nil {
			slog.Warn("recommendation provider failed, using fallback",
				"source", r.primary.Source(),
				"error", err,
			)
		} else if len(recs) > 0 {
			return recs, nil
		}
	}
	return r.fallback.Active(ctx)
}

// mentionsMicrosoftStack reports whether any note references the
// Microsoft/Azure security stack.
func mentionsMicrosoftStack(notes []string) bool {
	for _, note := range notes {
		lower := strings.ToLower(note)
		for _, kw := range sentinelKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// applySIEMOverride rewrites the ops-siem entry in place to promote the
// vendor-integrated SIEM and moves it to the front of the list. Applied at
// most once per resolution regardless of how many notes matched.
func applySIEMOverride(recs []models.Recommendation) []models.Recommendation {
	for i := range recs {
		if recs[i].ID != siemRecommendationID {
			continue
		}
		recs[i].Title = "Deploy Microsoft Sentinel as Your SIEM"
		recs[i].Description = "Your environment already runs on the Microsoft stack. Microsoft Sentinel ingests " +
			"Defender and Azure telemetry natively, ships with correlation rules for those sources, and avoids " +
			"standing up a separate log pipeline."
		recs[i].Technologies = []string{"Microsoft Sentinel", "Microsoft Defender XDR", "Azure Monitor", "Azure Log Analytics"}
		recs[i].Priority = models.PriorityHigh

		rewritten := recs[i]
		out := make([]models.Recommendation, 0, len(recs))
		out = append(out, rewritten)
		out = append(out, recs[:i]...)
		out = append(out, recs[i+1:]...)
		return out
	}
	return recs
}
