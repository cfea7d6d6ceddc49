package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gohappy/domain/core"
	"gohappy/domain/happiness"
	"gohappy/internal"
	"gohappy/internal/errors"
	"gohappy/ports"
)

var logger = internal.DefaultLogger.With("App")

// DatasetProvider caches the dataset of a source. The cached dataset is immutable
// and shared by all readers; Reload swaps it.
type DatasetProvider struct {
	source ports.DatasetSource

	loadMu   sync.Mutex // serialises loads from the source
	mu       sync.RWMutex
	ds       *happiness.Dataset
	loadedAt time.Time
}

// NewDatasetProvider creates a provider that loads lazily from source
func NewDatasetProvider(source ports.DatasetSource) *DatasetProvider {
	return &DatasetProvider{source: source}
}

// Load returns the cached dataset, loading it on first use
func (p *DatasetProvider) Load(ctx context.Context) (*happiness.Dataset, error) {
	p.mu.RLock()
	ds := p.ds
	p.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	// another caller may have loaded it while we waited
	p.mu.RLock()
	ds = p.ds
	p.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}
	return p.reloadLocked(ctx)
}

// Reload loads the dataset from the source and replaces the cached one.
// On failure the previous dataset stays in place.
func (p *DatasetProvider) Reload(ctx context.Context) (*happiness.Dataset, error) {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	return p.reloadLocked(ctx)
}

func (p *DatasetProvider) reloadLocked(ctx context.Context) (*happiness.Dataset, error) {
	start := time.Now()
	ds, err := p.source.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dataset")
	}

	p.mu.Lock()
	p.ds = ds
	p.loadedAt = time.Now()
	p.mu.Unlock()

	logger.Info("dataset ready: %d records in %v", ds.Len(), time.Since(start).Round(time.Millisecond))
	return ds, nil
}

// LoadedAt returns when the cached dataset was loaded, zero if never
func (p *DatasetProvider) LoadedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadedAt
}

// RepositorySource loads the latest imported snapshot from a repository
type RepositorySource struct {
	repo ports.DatasetRepository
}

// NewRepositorySource creates a source backed by the snapshot repository
func NewRepositorySource(repo ports.DatasetRepository) *RepositorySource {
	return &RepositorySource{repo: repo}
}

// Load builds a dataset from the most recent snapshot
func (s *RepositorySource) Load(ctx context.Context) (*happiness.Dataset, error) {
	snap, records, err := s.repo.LatestSnapshot(ctx)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, errors.WithCode(errors.CodeUnavailable, fmt.Errorf("no dataset imported yet: %w", err))
		}
		return nil, errors.DatabaseError("failed to load latest snapshot", err)
	}

	ds, err := happiness.NewDataset(records)
	if err != nil {
		return nil, errors.DatasetError(fmt.Sprintf("snapshot %s is invalid", snap.ID), err)
	}
	logger.Info("loaded snapshot %s %q (%s)", snap.ID, snap.Name, snap.Span())
	return ds, nil
}
