// Package localstore persists ledger snapshots as JSON files on disk. It is
// the fallback store when the cloud database is unreachable, and it also
// carries the queue of writes made while offline so they can be replayed.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/safdamla/pressbook/internal/domain/models"
)

// ErrNoSnapshot is returned when no local snapshot file exists yet.
var ErrNoSnapshot = errors.New("no local snapshot stored for ledger")

// Store is a directory-backed snapshot and pending-queue store.
type Store struct {
	dir    string
	logger *zap.Logger
}

// PendingWrite is one write queued while the cloud store was unreachable.
type PendingWrite struct {
	ID       string          `json:"id"`
	QueuedAt time.Time       `json:"queuedAt"`
	Snapshot models.Snapshot `json:"snapshot"`
}

// New creates the store, making the data directory if needed.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) snapshotPath(ledgerID string) string {
	return filepath.Join(s.dir, ledgerID+".json")
}

func (s *Store) pendingPath(ledgerID string) string {
	return filepath.Join(s.dir, ledgerID+".pending.json")
}

// ReadSnapshot loads the local snapshot file.
func (s *Store) ReadSnapshot(ledgerID string) (models.Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(ledgerID))
	if errors.Is(err, os.ErrNotExist) {
		return models.Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read local snapshot: %w", err)
	}

	// Lenient decode: legacy exports store some numerics as strings.
	snap, err := models.DecodeSnapshotJSON(data)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to decode local snapshot: %w", err)
	}
	return snap, nil
}

// WriteSnapshot replaces the local snapshot file atomically.
func (s *Store) WriteSnapshot(ledgerID string, snap models.Snapshot) error {
	return s.writeJSON(s.snapshotPath(ledgerID), snap)
}

// Enqueue appends a write to the pending queue and returns its entry.
func (s *Store) Enqueue(ledgerID string, snap models.Snapshot) (PendingWrite, error) {
	pending, err := s.Pending(ledgerID)
	if err != nil {
		return PendingWrite{}, err
	}

	entry := PendingWrite{
		ID:       uuid.NewString(),
		QueuedAt: time.Now().UTC(),
		Snapshot: snap,
	}
	pending = append(pending, entry)
	if err := s.writeJSON(s.pendingPath(ledgerID), pending); err != nil {
		return PendingWrite{}, err
	}
	s.logger.Info("write queued for later sync",
		zap.String("ledgerId", ledgerID),
		zap.String("entryId", entry.ID),
		zap.Int("queueLength", len(pending)))
	return entry, nil
}

// Pending returns the queued writes in enqueue order. A missing queue file
// means an empty queue.
func (s *Store) Pending(ledgerID string) ([]PendingWrite, error) {
	data, err := os.ReadFile(s.pendingPath(ledgerID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pending queue: %w", err)
	}

	var pending []PendingWrite
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("failed to decode pending queue: %w", err)
	}
	return pending, nil
}

// SetPending replaces the whole queue; an empty queue removes the file.
func (s *Store) SetPending(ledgerID string, pending []PendingWrite) error {
	if len(pending) == 0 {
		if err := os.Remove(s.pendingPath(ledgerID)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to clear pending queue: %w", err)
		}
		return nil
	}
	return s.writeJSON(s.pendingPath(ledgerID), pending)
}

// writeJSON writes to a temp file in the same directory and renames it over
// the target, so a crash never leaves a half-written file behind.
func (s *Store) writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
