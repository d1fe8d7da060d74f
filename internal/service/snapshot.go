package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hostident/internal/domain"
	"hostident/internal/machine"
	"hostident/internal/repository"
)

// SnapshotService records the identity of each process start and compares it
// with the previous one.
type SnapshotService struct {
	repo   repository.SnapshotRepository
	logger *slog.Logger
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(repo repository.SnapshotRepository, logger *slog.Logger) *SnapshotService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotService{
		repo:   repo,
		logger: logger.With("component", "snapshots"),
	}
}

// Record stores id and returns the fields that changed since the previous
// snapshot. Drift is logged at warn; the first snapshot never drifts.
func (s *SnapshotService) Record(ctx context.Context, id machine.Identity) (domain.Snapshot, []domain.Drift, error) {
	var drift []domain.Drift
	current := domain.NewSnapshot(id)

	prev, err := s.repo.Latest(ctx)
	switch {
	case err == nil:
		drift = current.DriftFrom(prev)
	case errors.Is(err, repository.ErrNotFound):
	default:
		return domain.Snapshot{}, nil, fmt.Errorf("failed to load previous snapshot: %w", err)
	}

	rec, err := s.repo.Record(ctx, current)
	if err != nil {
		return domain.Snapshot{}, nil, fmt.Errorf("failed to record snapshot: %w", err)
	}

	for _, d := range drift {
		s.logger.Warn("machine identity changed since last start",
			"field", d.Field,
			"previous", d.Previous,
			"current", d.Current,
			"previous_snapshot", prev.ID,
		)
	}
	s.logger.Debug("snapshot recorded", "id", rec.ID, "drift", len(drift))

	return rec, drift, nil
}

// History returns up to limit snapshots, newest first
func (s *SnapshotService) History(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	return s.repo.List(ctx, limit)
}

// List satisfies handler.SnapshotLister
func (s *SnapshotService) List(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	return s.History(ctx, limit)
}
