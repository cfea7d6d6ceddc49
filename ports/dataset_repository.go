package ports

import (
	"context"

	"gohappy/domain/core"
	"gohappy/domain/happiness"
	"gohappy/domain/snapshot"
)

// DatasetSource loads the dataset served by the dashboard
type DatasetSource interface {
	Load(ctx context.Context) (*happiness.Dataset, error)
}

// DatasetRepository defines the storage operations for imported dataset snapshots
type DatasetRepository interface {
	// SaveSnapshot stores the snapshot and all of its records atomically
	SaveSnapshot(ctx context.Context, snap *snapshot.Snapshot, ds *happiness.Dataset) error

	// LatestSnapshot returns the most recent snapshot and its records
	LatestSnapshot(ctx context.Context) (*snapshot.Snapshot, []happiness.Record, error)

	// GetSnapshot returns one snapshot and its records
	GetSnapshot(ctx context.Context, id core.ID) (*snapshot.Snapshot, []happiness.Record, error)

	ListSnapshots(ctx context.Context, limit int) ([]*snapshot.Snapshot, error)
}
