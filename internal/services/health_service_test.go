package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelpos/internal/store"
)

func TestHealthService_Checks(t *testing.T) {
	dataset, cfg := newTestDatasetService(t)
	require.NoError(t, os.MkdirAll(cfg.Paths.DataDir, 0755))

	hs := NewHealthService("1.0.0", cfg.Paths, dataset, nil, slog.Default())

	health := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "1.0.0", health.Version)

	liveness := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", liveness.Status)
	assert.NotNil(t, liveness.Runtime)

	readiness := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "ready", readiness.Status)

	dsHealth, ok := readiness.Services["dataset"].(ServiceHealth)
	require.True(t, ok)
	assert.Equal(t, "ready", dsHealth.Status)
	assert.Contains(t, dsHealth.Message, "No dataset loaded")
}

func TestHealthService_ReadinessAfterUpload(t *testing.T) {
	dataset, cfg := newTestDatasetService(t)
	require.NoError(t, os.MkdirAll(cfg.Paths.DataDir, 0755))
	uploadReport(t, dataset)

	hs := NewHealthService("1.0.0", cfg.Paths, dataset, nil, slog.Default())
	readiness := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "ready", readiness.Status)

	dsHealth := readiness.Services["dataset"].(ServiceHealth)
	assert.Contains(t, dsHealth.Message, "bao_cao.xlsx")
}

func TestHealthService_NotReadyWithoutDataDir(t *testing.T) {
	cfg := newTestConfig(t)
	// Data directory deliberately not created.

	hs := NewHealthService("1.0.0", cfg.Paths, nil, nil, slog.Default())
	readiness := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "not_ready", readiness.Status)
}

func TestHealthService_Version(t *testing.T) {
	cfg := newTestConfig(t)
	hs := NewHealthServiceWithBuildInfo("1.2.3", "2024-05-01T00:00:00Z", "abc123", cfg.Paths, nil, nil, slog.Default())

	version := hs.Version()
	assert.Equal(t, "1.2.3", version["version"])
	assert.Equal(t, "2024-05-01T00:00:00Z", version["build_time"])
	assert.Equal(t, "abc123", version["build_id"])
}

func TestHealthService_Stats(t *testing.T) {
	dataset, cfg := newTestDatasetService(t)
	uploadReport(t, dataset)

	st := store.New(cfg.Paths.SnapshotFile, cfg.Paths.EntriesFile, slog.Default())
	entries, err := NewEntryService(st, slog.Default())
	require.NoError(t, err)

	hs := NewHealthService("1.0.0", cfg.Paths, dataset, entries, slog.Default())
	stats, err := hs.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.DatasetTransactions)
	assert.Zero(t, stats.ManualEntries)
	assert.Greater(t, stats.TotalFiles, 0)
	assert.NotEmpty(t, stats.GoVersion)
}
