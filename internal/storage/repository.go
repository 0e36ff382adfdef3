package storage

import (
	"context"

	"github.com/opsgrade/posture-engine/internal/models"
)

// ReportFilters narrows report listings
type ReportFilters struct {
	CreatedBy string
	Limit     int
	Offset    int
}

// Repository persists finalized assessment reports
type Repository interface {
	SaveReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context, filters ReportFilters) ([]*models.Report, error)
	DeleteReport(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close() error
}
