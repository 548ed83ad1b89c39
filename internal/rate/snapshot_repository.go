package rate

import (
	"context"
	"errors"
	"fmt"
	"fxbot/internal/adapters"
	"fxbot/internal/domain"
)

const snapshotKey = "snapshot:latest"

// SnapshotRepository stores the latest snapshot under a single key and keeps a
// decoded copy in the cache.
type SnapshotRepository struct {
	store adapters.Store
	cache adapters.SnapshotCache
}

func (r *SnapshotRepository) Latest(ctx context.Context) (domain.Snapshot, error) {
	if r.cache != nil {
		if snap, ok := r.cache.Get(); ok {
			return snap, nil
		}
	}

	raw, err := r.store.Get(ctx, snapshotKey)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return domain.Snapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	snap, err := domain.DecodeSnapshot(raw)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if r.cache != nil {
		r.cache.Set(snap)
	}
	return snap, nil
}

func (r *SnapshotRepository) Save(ctx context.Context, snap domain.Snapshot) error {
	raw, err := domain.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err = r.store.Put(ctx, snapshotKey, raw); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	if r.cache != nil {
		r.cache.Set(snap)
	}
	return nil
}

func NewSnapshotRepository(store adapters.Store, cache adapters.SnapshotCache) *SnapshotRepository {
	return &SnapshotRepository{store: store, cache: cache}
}
