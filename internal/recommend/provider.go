// Package recommend maps gapped domains to remediation recommendations.
// The catalog has two backings behind one contract: the external table
// store as provider-of-record and the embedded static seed as fallback.
package recommend

import (
	"context"

	"github.com/opsgrade/posture-engine/internal/models"
	"github.com/opsgrade/posture-engine/internal/tablestore"
)

// Provider yields the active recommendation catalog
type Provider interface {
	// Active returns all currently active catalog entries
	Active(ctx context.Context) ([]models.Recommendation, error)

	// Source names the backing for logging
	Source() string
}

// StaticProvider serves the embedded seed catalog
type StaticProvider struct{}

// Active returns a copy of the seed entries
func (StaticProvider) Active(ctx context.Context) ([]models.Recommendation, error) {
	seed := SeedCatalog()
	out := make([]models.Recommendation, len(seed))
	copy(out, seed)
	return out, nil
}

// Source identifies the static backing
func (StaticProvider) Source() string { return "static" }

// TableProvider serves the externally persisted catalog filtered to
// active records.
type TableProvider struct {
	client  *tablestore.Client
	tableID string
}

// NewTableProvider creates a provider over the hosted catalog table
func NewTableProvider(client *tablestore.Client, tableID string) *TableProvider {
	return &TableProvider{client: client, tableID: tableID}
}

// tablePageSize bounds one catalog fetch; the catalog is admin-curated and
// small, so a single page is expected to cover it.
const tablePageSize = 500

// Active fetches active records from the store and normalizes them
func (p *TableProvider) Active(ctx context.Context) ([]models.Recommendation, error) {
	records, _, err := p.client.PageRecommendations(ctx, p.tableID, tablestore.PageQuery{
		PageNo:       1,
		PageSize:     tablePageSize,
		OrderByField: "recommendation_id",
		IsAsc:        true,
		Filters: []tablestore.Filter{
			{Name: "is_active", Op: tablestore.OpEqual, Value: "true"},
		},
	})
	if err != nil {
		return nil, err
	}

	recs := make([]models.Recommendation, 0, len(records))
	for i := range records {
		recs = append(recs, records[i].ToModel())
	}
	return recs, nil
}

// Source identifies the table-store backing
func (p *TableProvider) Source() string { return "tablestore" }
