package services

import (
	"context"

	"github.com/opsgrade/posture-engine/internal/tablestore"
)

// TableStoreProvider answers health probes against the hosted catalog
// backend by issuing a minimal one-row page query.
type TableStoreProvider struct {
	BaseProvider
	client  *tablestore.Client
	tableID string
}

// NewTableStoreProvider wraps an existing table-store client
func NewTableStoreProvider(client *tablestore.Client, tableID string) *TableStoreProvider {
	return &TableStoreProvider{
		BaseProvider: BaseProvider{serviceType: "tablestore"},
		client:       client,
		tableID:      tableID,
	}
}

// HealthCheck verifies the backend answers table queries
func (p *TableStoreProvider) HealthCheck(ctx context.Context) error {
	return p.client.Ping(ctx, p.tableID)
}
