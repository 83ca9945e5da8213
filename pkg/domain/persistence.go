package domain

import "context"

// SnapshotStore is a minimal abstraction over durable backends holding the
// registry definition state. Implementations snapshot the full state on
// every save.
type SnapshotStore interface {
	// Save replaces the stored snapshot.
	Save(ctx context.Context, snapshot Snapshot) error
	// Load returns the stored snapshot and whether one was present.
	Load(ctx context.Context) (Snapshot, bool, error)
	// Close releases backend resources.
	Close() error
}
