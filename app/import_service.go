package app

import (
	"context"

	"gohappy/domain/core"
	"gohappy/domain/happiness"
	"gohappy/domain/snapshot"
	"gohappy/internal/errors"
	"gohappy/ports"
)

// ImportService stores datasets as snapshots
type ImportService struct {
	repo ports.DatasetRepository
}

// NewImportService creates an import service over the snapshot repository
func NewImportService(repo ports.DatasetRepository) *ImportService {
	return &ImportService{repo: repo}
}

// ImportResult reports what Import did
type ImportResult struct {
	Snapshot *snapshot.Snapshot
	Created  bool // false when the latest snapshot already had the same checksum
}

// Import saves ds as a new snapshot. Unless force is set, importing the same
// source bytes as the latest snapshot is a no-op.
func (s *ImportService) Import(ctx context.Context, name, source string, checksum core.Checksum, ds *happiness.Dataset, force bool) (*ImportResult, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errors.InvalidInput("nothing to import")
	}

	if !force {
		latest, _, err := s.repo.LatestSnapshot(ctx)
		switch {
		case err == nil && latest.Checksum == checksum:
			logger.Info("snapshot %s already holds %s (checksum %s)", latest.ID, source, checksum.Short())
			return &ImportResult{Snapshot: latest}, nil
		case err != nil && !core.IsNotFoundError(err):
			return nil, errors.DatabaseError("failed to check latest snapshot", err)
		}
	}

	snap := snapshot.New(name, source, checksum, ds)
	if err := s.repo.SaveSnapshot(ctx, snap, ds); err != nil {
		return nil, errors.DatabaseError("failed to save snapshot", err)
	}
	logger.Info("imported %s as snapshot %s (%d records, %s)", source, snap.ID, snap.RecordCount, snap.Span())
	return &ImportResult{Snapshot: snap, Created: true}, nil
}

// Snapshots lists stored snapshots, newest first
func (s *ImportService) Snapshots(ctx context.Context, limit int) ([]*snapshot.Snapshot, error) {
	snaps, err := s.repo.ListSnapshots(ctx, limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list snapshots", err)
	}
	return snaps, nil
}
