package http

import (
	"context"
	"io"
	"time"

	"fuelpos/internal/services"
	"fuelpos/pkg/contracts/domain"
)

// DatasetServiceInterface defines the dataset operations the handlers
// depend on. Kept as an interface so handler tests can substitute mocks.
type DatasetServiceInterface interface {
	Upload(ctx context.Context, filename string, size int64, r io.Reader) (*services.UploadResult, error)
	Transactions(ctx context.Context, from, to *time.Time) ([]domain.Transaction, error)
	Statistics(ctx context.Context, from, to *time.Time, period domain.Period) (*services.StatisticsResult, error)
	Info(ctx context.Context) (*services.DatasetInfo, error)
	Clear(ctx context.Context) error
	ExportCSV(ctx context.Context, from, to *time.Time) (string, error)
}

// EntryServiceInterface defines the manual-entry operations the handlers
// depend on.
type EntryServiceInterface interface {
	Create(ctx context.Context, entry domain.ManualEntry) (*domain.ManualEntry, error)
	List(ctx context.Context) []domain.ManualEntry
	Delete(ctx context.Context, id int) error
}
