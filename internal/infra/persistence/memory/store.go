// Package memory provides an in-memory snapshot store for tests and
// ephemeral runs.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"ensemblecore/pkg/domain"
)

var _ domain.SnapshotStore = (*Store)(nil)

// Store holds the latest snapshot in memory. Snapshots are deep-copied on
// both save and load so callers cannot alias stored state.
type Store struct {
	mu       sync.RWMutex
	snapshot domain.Snapshot
	present  bool
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Save replaces the stored snapshot.
func (s *Store) Save(_ context.Context, snapshot domain.Snapshot) error {
	copied, err := clone(snapshot)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = copied
	s.present = true
	return nil
}

// Load returns the stored snapshot and whether one was present.
func (s *Store) Load(_ context.Context) (domain.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return domain.Snapshot{}, false, nil
	}
	copied, err := clone(s.snapshot)
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	return copied, true, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func clone(in domain.Snapshot) (domain.Snapshot, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	var out domain.Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return out, nil
}
