// Package syncer keeps the cloud and local copies of the ledger in step.
// Reads prefer the cloud store and fall back to the local file; writes
// always mirror to the local file and are queued for replay whenever the
// cloud store is unreachable.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/safdamla/pressbook/internal/domain/models"
	"github.com/safdamla/pressbook/internal/repository/localstore"
	"github.com/safdamla/pressbook/internal/repository/mongodb"
)

// State labels for the sync status surfaced to the UI.
const (
	StateSynced  = "synced"
	StateSyncing = "syncing"
	StateOffline = "offline"
)

// CloudStore is the remote snapshot store.
type CloudStore interface {
	ReadSnapshot(ctx context.Context, ledgerID string) (models.Snapshot, error)
	WriteSnapshot(ctx context.Context, ledgerID string, snap models.Snapshot) error
	Ping(ctx context.Context) error
}

// LocalStore is the on-disk fallback store and offline queue.
type LocalStore interface {
	ReadSnapshot(ledgerID string) (models.Snapshot, error)
	WriteSnapshot(ledgerID string, snap models.Snapshot) error
	Enqueue(ledgerID string, snap models.Snapshot) (localstore.PendingWrite, error)
	Pending(ledgerID string) ([]localstore.PendingWrite, error)
	SetPending(ledgerID string, pending []localstore.PendingWrite) error
}

// Prober checks raw network reachability before the cloud store is retried.
type Prober interface {
	Probe(ctx context.Context) error
}

// Status reports the current sync position.
type Status struct {
	State        string `json:"state"`
	PendingCount int    `json:"pendingCount"`
	CloudEnabled bool   `json:"cloudEnabled"`
}

// Syncer binds one ledger id to a cloud store and a local store. It
// satisfies the snapshot Store interface the bookkeeping service writes
// through. A nil cloud store runs the application in local-only mode.
type Syncer struct {
	cloud    CloudStore
	local    LocalStore
	prober   Prober
	ledgerID string
	logger   *zap.Logger

	mu      sync.Mutex
	offline bool
}

// New wires a syncer for the given ledger id.
func New(cloud CloudStore, local LocalStore, prober Prober, ledgerID string, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{
		cloud:    cloud,
		local:    local,
		prober:   prober,
		ledgerID: ledgerID,
		logger:   logger,
	}
}

// Read loads the snapshot, preferring the cloud copy. A cloud document that
// does not exist yet is seeded from the local copy when one is present, so
// a ledger started offline migrates up on first contact. Any cloud failure
// drops the syncer into offline mode and serves the local copy.
func (s *Syncer) Read(ctx context.Context) (models.Snapshot, error) {
	if s.cloud != nil && !s.isOffline() {
		snap, err := s.cloud.ReadSnapshot(ctx, s.ledgerID)
		switch {
		case err == nil:
			// Keep the local mirror fresh for the next outage.
			if werr := s.local.WriteSnapshot(s.ledgerID, snap); werr != nil {
				s.logger.Warn("failed to mirror snapshot locally", zap.Error(werr))
			}
			return snap, nil
		case errors.Is(err, mongodb.ErrNoSnapshot):
			return s.migrateLocal(ctx)
		default:
			s.setOffline(true)
			s.logger.Warn("cloud read failed, falling back to local store", zap.Error(err))
		}
	}

	snap, err := s.local.ReadSnapshot(s.ledgerID)
	if errors.Is(err, localstore.ErrNoSnapshot) {
		return models.EmptySnapshot(), nil
	}
	if err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

// migrateLocal seeds the cloud document from the local file, or starts an
// empty ledger when neither side has data yet.
func (s *Syncer) migrateLocal(ctx context.Context) (models.Snapshot, error) {
	snap, err := s.local.ReadSnapshot(s.ledgerID)
	if errors.Is(err, localstore.ErrNoSnapshot) {
		return models.EmptySnapshot(), nil
	}
	if err != nil {
		return models.Snapshot{}, err
	}

	if err := s.cloud.WriteSnapshot(ctx, s.ledgerID, snap); err != nil {
		s.setOffline(true)
		s.logger.Warn("failed to migrate local snapshot to cloud", zap.Error(err))
		return snap, nil
	}
	s.logger.Info("local snapshot migrated to cloud", zap.String("ledgerId", s.ledgerID))
	return snap, nil
}

// Write persists the snapshot: always to the local mirror, and to the cloud
// when reachable. A failed or skipped cloud write lands on the pending queue.
func (s *Syncer) Write(ctx context.Context, snap models.Snapshot) error {
	if err := s.local.WriteSnapshot(s.ledgerID, snap); err != nil {
		return fmt.Errorf("failed to write local snapshot: %w", err)
	}

	if s.cloud == nil {
		return nil
	}

	if !s.isOffline() {
		err := s.cloud.WriteSnapshot(ctx, s.ledgerID, snap)
		if err == nil {
			return nil
		}
		s.setOffline(true)
		s.logger.Warn("cloud write failed, queueing for later sync", zap.Error(err))
	}

	if _, err := s.local.Enqueue(s.ledgerID, snap); err != nil {
		return fmt.Errorf("failed to queue offline write: %w", err)
	}
	return nil
}

// Flush replays the pending queue against the cloud store in enqueue order,
// stopping at the first failure so nothing is reordered or lost.
func (s *Syncer) Flush(ctx context.Context) error {
	if s.cloud == nil {
		return nil
	}

	pending, err := s.local.Pending(s.ledgerID)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		s.setOffline(false)
		return nil
	}

	for i, entry := range pending {
		if err := s.cloud.WriteSnapshot(ctx, s.ledgerID, entry.Snapshot); err != nil {
			if serr := s.local.SetPending(s.ledgerID, pending[i:]); serr != nil {
				s.logger.Error("failed to trim pending queue", zap.Error(serr))
			}
			s.setOffline(true)
			return fmt.Errorf("failed to replay queued write %s: %w", entry.ID, err)
		}
		s.logger.Info("queued write replayed", zap.String("entryId", entry.ID))
	}

	if err := s.local.SetPending(s.ledgerID, nil); err != nil {
		return err
	}
	s.setOffline(false)
	s.logger.Info("pending queue drained", zap.Int("replayed", len(pending)))
	return nil
}

// Probe checks connectivity and, when the cloud is reachable again, replays
// whatever queued up while offline.
func (s *Syncer) Probe(ctx context.Context) error {
	if s.cloud == nil {
		return nil
	}

	if s.prober != nil {
		if err := s.prober.Probe(ctx); err != nil {
			s.setOffline(true)
			return err
		}
	}
	if err := s.cloud.Ping(ctx); err != nil {
		s.setOffline(true)
		return err
	}
	return s.Flush(ctx)
}

// Status reports the sync position for the UI badge.
func (s *Syncer) Status() Status {
	st := Status{State: StateSynced, CloudEnabled: s.cloud != nil}

	pending, err := s.local.Pending(s.ledgerID)
	if err != nil {
		s.logger.Warn("failed to read pending queue", zap.Error(err))
	}
	st.PendingCount = len(pending)

	switch {
	case s.cloud == nil || s.isOffline():
		st.State = StateOffline
	case st.PendingCount > 0:
		st.State = StateSyncing
	}
	return st
}

func (s *Syncer) isOffline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offline
}

func (s *Syncer) setOffline(offline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offline != offline {
		if offline {
			s.logger.Warn("sync state changed", zap.String("state", StateOffline))
		} else {
			s.logger.Info("sync state changed", zap.String("state", StateSynced))
		}
	}
	s.offline = offline
}
