package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelpos/internal/store"
	"fuelpos/pkg/contracts/domain"
)

func newTestEntryService(t *testing.T) (*EntryService, *store.Store) {
	t.Helper()
	cfg := newTestConfig(t)
	st := store.New(cfg.Paths.SnapshotFile, cfg.Paths.EntriesFile, slog.Default())
	svc, err := NewEntryService(st, slog.Default())
	require.NoError(t, err)
	return svc, st
}

func validEntry() domain.ManualEntry {
	return domain.ManualEntry{
		Time:      time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		Quantity:  20,
		Pump:      "Bơm 1",
		UnitPrice: 24500,
	}
}

func TestEntryService_Create(t *testing.T) {
	svc, _ := newTestEntryService(t)

	created, err := svc.Create(context.Background(), validEntry())
	require.NoError(t, err)

	assert.Equal(t, 1, created.ID)
	assert.InDelta(t, 490000, created.Revenue, 1e-9) // derived from quantity x unit price
	assert.False(t, created.CreatedAt.IsZero())

	second, err := svc.Create(context.Background(), validEntry())
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func TestEntryService_Create_KeepsExplicitRevenue(t *testing.T) {
	svc, _ := newTestEntryService(t)

	entry := validEntry()
	entry.Revenue = 123456
	created, err := svc.Create(context.Background(), entry)
	require.NoError(t, err)
	assert.InDelta(t, 123456, created.Revenue, 1e-9)
}

func TestEntryService_Create_ValidationFailures(t *testing.T) {
	svc, _ := newTestEntryService(t)

	tests := []struct {
		name   string
		mutate func(*domain.ManualEntry)
	}{
		{"missing time", func(e *domain.ManualEntry) { e.Time = time.Time{} }},
		{"zero quantity", func(e *domain.ManualEntry) { e.Quantity = 0 }},
		{"negative quantity", func(e *domain.ManualEntry) { e.Quantity = -5 }},
		{"missing pump", func(e *domain.ManualEntry) { e.Pump = "" }},
		{"zero unit price", func(e *domain.ManualEntry) { e.UnitPrice = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.mutate(&entry)

			_, err := svc.Create(context.Background(), entry)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}

	assert.Zero(t, svc.Count())
}

func TestEntryService_List(t *testing.T) {
	svc, _ := newTestEntryService(t)
	assert.Empty(t, svc.List(context.Background()))

	_, err := svc.Create(context.Background(), validEntry())
	require.NoError(t, err)

	entries := svc.List(context.Background())
	require.Len(t, entries, 1)

	// The returned slice is a copy.
	entries[0].Pump = "mutated"
	assert.Equal(t, "Bơm 1", svc.List(context.Background())[0].Pump)
}

func TestEntryService_Delete(t *testing.T) {
	svc, _ := newTestEntryService(t)

	created, err := svc.Create(context.Background(), validEntry())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, svc.List(context.Background()))

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrEntryNotFound)
}

func TestEntryService_PersistsAcrossRestart(t *testing.T) {
	svc, st := newTestEntryService(t)

	_, err := svc.Create(context.Background(), validEntry())
	require.NoError(t, err)

	restarted, err := NewEntryService(st, slog.Default())
	require.NoError(t, err)
	require.Len(t, restarted.List(context.Background()), 1)

	// IDs continue after the highest persisted one.
	created, err := restarted.Create(context.Background(), validEntry())
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)
}
