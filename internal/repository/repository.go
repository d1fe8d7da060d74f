package repository

import (
	"context"
	"errors"

	"hostident/internal/domain"
)

// ErrNotFound is returned when no snapshot matches
var ErrNotFound = errors.New("snapshot not found")

// SnapshotRepository persists identity snapshots
type SnapshotRepository interface {
	// Record stores s and returns it with its assigned ID
	Record(ctx context.Context, s domain.Snapshot) (domain.Snapshot, error)
	// Latest returns the most recent snapshot or ErrNotFound
	Latest(ctx context.Context) (domain.Snapshot, error)
	// List returns up to limit snapshots, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]domain.Snapshot, error)

	Close() error
}
