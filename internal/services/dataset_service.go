package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"fuelpos/internal/config"
	"fuelpos/internal/dataprocessing"
	apierrors "fuelpos/internal/errors"
	"fuelpos/internal/exporter"
	"fuelpos/internal/store"
	"fuelpos/internal/validation"
	"fuelpos/pkg/contracts/domain"
)

// DatasetService owns the normalized dataset built from the most recently
// uploaded point-of-sale workbook. A new upload replaces the previous
// dataset wholesale; queries run against the in-memory copy while the
// snapshot store keeps it durable across restarts.
type DatasetService struct {
	config   *config.Config
	store    *store.Store
	uploads  *validation.UploadValidator
	exporter *exporter.TransactionExporter
	logger   *slog.Logger

	mu       sync.RWMutex
	snapshot *store.DatasetSnapshot
}

// UploadResult summarizes a successful workbook ingestion.
type UploadResult struct {
	Filename     string            `json:"filename"`
	UploadedAt   time.Time         `json:"uploaded_at"`
	Transactions int               `json:"transactions"`
	TimeRange    *domain.TimeRange `json:"time_range,omitempty"`
}

// DatasetInfo describes the currently loaded dataset.
type DatasetInfo struct {
	Filename     string            `json:"filename"`
	UploadedAt   time.Time         `json:"uploaded_at"`
	Transactions int               `json:"transactions"`
	TimeRange    *domain.TimeRange `json:"time_range,omitempty"`
}

// StatisticsResult carries overall statistics for the selected range plus
// the hourly distribution, and grouped buckets when a period was requested.
type StatisticsResult struct {
	Overall domain.TransactionStats        `json:"overall"`
	Hourly  []domain.HourlySlot            `json:"hourly_distribution"`
	Period  domain.Period                  `json:"period,omitempty"`
	Buckets map[string]*domain.PeriodBucket `json:"buckets,omitempty"`
}

// NewDatasetService creates the dataset service and restores any persisted
// snapshot. A corrupt snapshot file is logged and skipped so the server
// still starts, just without a dataset loaded.
func NewDatasetService(cfg *config.Config, st *store.Store, logger *slog.Logger) (*DatasetService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	svc := &DatasetService{
		config:   cfg,
		store:    st,
		uploads:  validation.NewUploadValidator(cfg.Upload.MaxFileSize, cfg.Upload.AllowedExtensions, logger),
		exporter: exporter.NewTransactionExporter(cfg.Paths.ExportDir),
		logger:   logger,
	}

	snapshot, err := st.LoadDataset()
	if err != nil {
		logger.Warn("Failed to restore dataset snapshot, starting empty",
			slog.String("error", err.Error()))
	} else if snapshot != nil {
		svc.snapshot = snapshot
		logger.Info("Dataset restored from snapshot",
			slog.String("filename", snapshot.Filename),
			slog.Int("transactions", len(snapshot.Transactions)))
	}

	return svc, nil
}

// Upload ingests one workbook: validates the upload policy, decodes the
// first sheet, normalizes its rows, and atomically replaces the current
// dataset. The reader must carry the raw workbook bytes.
func (s *DatasetService) Upload(ctx context.Context, filename string, size int64, r io.Reader) (*UploadResult, error) {
	if err := s.uploads.ValidateUpload(filename, size); err != nil {
		return nil, err
	}

	grid, err := dataprocessing.DecodeWorkbook(r)
	if err != nil {
		logIngestError(ctx, "decode_workbook", "Failed to decode workbook",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		return nil, apierrors.ParseFailedError(err)
	}

	if len(grid) > config.MaxSheetRows {
		return nil, apierrors.ParseFailedError(
			fmt.Errorf("sheet has %d rows, limit is %d", len(grid), config.MaxSheetRows))
	}

	records, err := dataprocessing.BuildRecords(grid)
	if err != nil {
		logIngestError(ctx, "build_records", "Failed to normalize workbook rows",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		return nil, apierrors.ParseFailedError(err)
	}

	if len(records) == 0 {
		return nil, apierrors.ErrEmptyDataset
	}

	snapshot := &store.DatasetSnapshot{
		Filename:     filepath.Base(filename),
		UploadedAt:   time.Now().UTC(),
		Transactions: records,
	}

	if err := s.store.SaveDataset(snapshot); err != nil {
		logIngestError(ctx, "persist_snapshot", "Failed to persist dataset snapshot",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to persist dataset: %w", err)
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	stats := dataprocessing.Summarize(records)
	s.logger.InfoContext(ctx, "dataset replaced",
		slog.String("filename", snapshot.Filename),
		slog.Int("transactions", len(records)))

	return &UploadResult{
		Filename:     snapshot.Filename,
		UploadedAt:   snapshot.UploadedAt,
		Transactions: len(records),
		TimeRange:    stats.TimeRange,
	}, nil
}

// Transactions returns the records whose composed timestamps fall within
// the inclusive [from, to] range. Nil bounds leave that side open.
func (s *DatasetService) Transactions(ctx context.Context, from, to *time.Time) ([]domain.Transaction, error) {
	records, err := s.currentRecords()
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, apierrors.ErrInvalidTimeRange
	}

	filtered := dataprocessing.FilterByRange(records, from, to)
	s.logger.DebugContext(ctx, "transactions query",
		slog.Int("total", len(records)),
		slog.Int("matched", len(filtered)))
	return filtered, nil
}

// Statistics aggregates the records in range. When period is non-empty the
// result additionally carries per-bucket statistics at that granularity.
func (s *DatasetService) Statistics(ctx context.Context, from, to *time.Time, period domain.Period) (*StatisticsResult, error) {
	if period != "" && !period.Valid() {
		return nil, apierrors.ErrInvalidPeriod
	}

	filtered, err := s.Transactions(ctx, from, to)
	if err != nil {
		return nil, err
	}

	result := &StatisticsResult{
		Overall: dataprocessing.Summarize(filtered),
		Hourly:  dataprocessing.HourlyDistribution(filtered),
	}
	if period != "" {
		result.Period = period
		result.Buckets = dataprocessing.GroupByPeriod(filtered, period)
	}
	return result, nil
}

// Info returns metadata about the loaded dataset.
func (s *DatasetService) Info(ctx context.Context) (*DatasetInfo, error) {
	s.mu.RLock()
	snapshot := s.snapshot
	s.mu.RUnlock()

	if snapshot == nil {
		return nil, apierrors.ErrNoDataset
	}

	stats := dataprocessing.Summarize(snapshot.Transactions)
	return &DatasetInfo{
		Filename:     snapshot.Filename,
		UploadedAt:   snapshot.UploadedAt,
		Transactions: len(snapshot.Transactions),
		TimeRange:    stats.TimeRange,
	}, nil
}

// Clear drops the loaded dataset and its persisted snapshot. Clearing an
// already empty service is not an error.
func (s *DatasetService) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()

	if err := s.store.ClearDataset(); err != nil {
		return fmt.Errorf("failed to clear dataset snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "dataset cleared")
	return nil
}

// ExportCSV writes the records in range to a timestamped CSV file in the
// export directory and returns its path.
func (s *DatasetService) ExportCSV(ctx context.Context, from, to *time.Time) (string, error) {
	filtered, err := s.Transactions(ctx, from, to)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().UTC().Format("20060102_150405"))
	path, err := s.exporter.ExportTransactions(filtered, filename)
	if err != nil {
		return "", fmt.Errorf("failed to export transactions: %w", err)
	}

	s.logger.InfoContext(ctx, "transactions exported",
		slog.String("path", path),
		slog.Int("transactions", len(filtered)))
	return path, nil
}

// currentRecords returns the loaded record slice or ErrNoDataset.
func (s *DatasetService) currentRecords() ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, apierrors.ErrNoDataset
	}
	return s.snapshot.Transactions, nil
}
