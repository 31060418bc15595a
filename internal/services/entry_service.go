package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"fuelpos/internal/store"
	"fuelpos/pkg/contracts/domain"
)

// EntryService manages hand-keyed transactions from the data-entry form.
// Entries live alongside the dataset but are never merged into it; they
// are an independent record of pump sales typed in by staff.
type EntryService struct {
	store    *store.Store
	validate *validator.Validate
	logger   *slog.Logger

	mu      sync.Mutex
	entries []domain.ManualEntry
	nextID  int
}

// NewEntryService creates the entry service and restores persisted entries.
func NewEntryService(st *store.Store, logger *slog.Logger) (*EntryService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := st.LoadEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to restore manual entries: %w", err)
	}

	nextID := 1
	for _, entry := range entries {
		if entry.ID >= nextID {
			nextID = entry.ID + 1
		}
	}

	logger.Info("EntryService initialized",
		slog.Int("entries", len(entries)))

	return &EntryService{
		store:    st,
		validate: validator.New(),
		logger:   logger,
		entries:  entries,
		nextID:   nextID,
	}, nil
}

// Create validates and persists one manual entry. Revenue defaults to
// quantity times unit price when the caller omits it.
func (s *EntryService) Create(ctx context.Context, entry domain.ManualEntry) (*domain.ManualEntry, error) {
	if entry.Revenue == 0 {
		entry.Revenue = entry.Quantity * entry.UnitPrice
	}

	if err := s.validate.Struct(&entry); err != nil {
		s.logger.WarnContext(ctx, "manual entry rejected",
			slog.String("pump", entry.Pump),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	entry.CreatedAt = time.Now().UTC()
	s.nextID++

	updated := append(append([]domain.ManualEntry{}, s.entries...), entry)
	if err := s.store.SaveEntries(updated); err != nil {
		s.nextID--
		return nil, fmt.Errorf("failed to persist manual entry: %w", err)
	}
	s.entries = updated

	s.logger.InfoContext(ctx, "manual entry created",
		slog.Int("id", entry.ID),
		slog.String("pump", entry.Pump),
		slog.Float64("revenue", entry.Revenue))

	return &entry, nil
}

// List returns all manual entries in insertion order.
func (s *EntryService) List(ctx context.Context) []domain.ManualEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ManualEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Delete removes one entry by ID.
func (s *EntryService) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, entry := range s.entries {
		if entry.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrEntryNotFound
	}

	updated := append(append([]domain.ManualEntry{}, s.entries[:idx]...), s.entries[idx+1:]...)
	if err := s.store.SaveEntries(updated); err != nil {
		return fmt.Errorf("failed to persist manual entries: %w", err)
	}
	s.entries = updated

	s.logger.InfoContext(ctx, "manual entry deleted", slog.Int("id", id))
	return nil
}

// Count returns the number of stored entries.
func (s *EntryService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
