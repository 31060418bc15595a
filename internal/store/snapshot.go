// Package store persists the loaded dataset and manual entries as JSON
// snapshots so the server survives restarts without re-uploading.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	apierrors "fuelpos/internal/errors"
	"fuelpos/pkg/contracts/domain"
)

// DatasetSnapshot is the persisted form of one uploaded workbook after
// normalization, together with its upload metadata.
type DatasetSnapshot struct {
	Filename     string               `json:"filename"`
	UploadedAt   time.Time            `json:"uploaded_at"`
	SheetName    string               `json:"sheet_name,omitempty"`
	Transactions []domain.Transaction `json:"transactions"`
}

// Store reads and writes JSON snapshots under the configured data paths.
// Writes go through a temp file plus rename so a crash mid-write never
// leaves a truncated snapshot behind.
type Store struct {
	mu           sync.Mutex
	snapshotPath string
	entriesPath  string
	logger       *slog.Logger
}

// New creates a snapshot store. The parent directories are created on the
// first write, not here.
func New(snapshotPath, entriesPath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		snapshotPath: snapshotPath,
		entriesPath:  entriesPath,
		logger:       logger,
	}
}

// SaveDataset persists the current dataset snapshot.
func (s *Store) SaveDataset(snapshot *DatasetSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeJSON(s.snapshotPath, snapshot); err != nil {
		return apierrors.NewStorageError("failed to save dataset snapshot", err)
	}

	s.logger.Info("Dataset snapshot saved",
		slog.String("path", s.snapshotPath),
		slog.String("filename", snapshot.Filename),
		slog.Int("transactions", len(snapshot.Transactions)))
	return nil
}

// LoadDataset reads the persisted dataset snapshot. A missing file returns
// (nil, nil): the server simply starts with no dataset loaded.
func (s *Store) LoadDataset() (*DatasetSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.snapshotPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apierrors.NewStorageError("failed to read dataset snapshot", err)
	}

	var snapshot DatasetSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, apierrors.NewStorageError("failed to decode dataset snapshot", err)
	}

	s.logger.Info("Dataset snapshot loaded",
		slog.String("path", s.snapshotPath),
		slog.String("filename", snapshot.Filename),
		slog.Int("transactions", len(snapshot.Transactions)))
	return &snapshot, nil
}

// ClearDataset removes the persisted snapshot. Clearing an already absent
// snapshot is not an error.
func (s *Store) ClearDataset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.snapshotPath); err != nil && !os.IsNotExist(err) {
		return apierrors.NewStorageError("failed to clear dataset snapshot", err)
	}

	s.logger.Info("Dataset snapshot cleared", slog.String("path", s.snapshotPath))
	return nil
}

// SaveEntries persists the full manual-entry list.
func (s *Store) SaveEntries(entries []domain.ManualEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries == nil {
		entries = []domain.ManualEntry{}
	}
	if err := s.writeJSON(s.entriesPath, entries); err != nil {
		return apierrors.NewStorageError("failed to save manual entries", err)
	}

	s.logger.Info("Manual entries saved",
		slog.String("path", s.entriesPath),
		slog.Int("count", len(entries)))
	return nil
}

// LoadEntries reads the persisted manual entries. A missing file returns an
// empty list.
func (s *Store) LoadEntries() ([]domain.ManualEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.entriesPath)
	if os.IsNotExist(err) {
		return []domain.ManualEntry{}, nil
	}
	if err != nil {
		return nil, apierrors.NewStorageError("failed to read manual entries", err)
	}

	var entries []domain.ManualEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apierrors.NewStorageError("failed to decode manual entries", err)
	}
	return entries, nil
}

// writeJSON marshals v and writes it atomically: the payload goes to a temp
// file in the target directory first, then replaces the destination with a
// rename. Rename is atomic on the same filesystem.
func (s *Store) writeJSON(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
