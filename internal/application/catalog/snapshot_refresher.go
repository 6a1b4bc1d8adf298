package catalog

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/domain/catalog"
)

// SnapshotRefresher keeps an in-memory catalog snapshot current by
// polling the repository. Readers get the snapshot through an atomic
// pointer; a refresh swaps the whole snapshot at once, so a reader
// never observes a half-updated catalog.
type SnapshotRefresher struct {
	productRepo catalog.ProductRepository
	interval    time.Duration
	current     atomic.Pointer[catalog.Snapshot]
	logger      *zap.Logger
}

// NewSnapshotRefresher creates a refresher polling at the given
// interval
func NewSnapshotRefresher(productRepo catalog.ProductRepository, interval time.Duration, logger *zap.Logger) *SnapshotRefresher {
	r := &SnapshotRefresher{
		productRepo: productRepo,
		interval:    interval,
		logger:      logger.Named("snapshot_refresher"),
	}
	r.current.Store(catalog.NewSnapshot(nil))
	return r
}

// Start loads the initial snapshot, then refreshes on the configured
// interval until the context is cancelled. A failed refresh keeps the
// previous snapshot; a stale catalog beats no catalog.
func (r *SnapshotRefresher) Start(ctx context.Context) error {
	if err := r.Refresh(ctx); err != nil {
		return err
	}

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.Refresh(ctx); err != nil {
					r.logger.Warn("catalog snapshot refresh failed, keeping previous snapshot", zap.Error(err))
				}
			}
		}
	}()

	return nil
}

// Refresh reloads the active catalog and swaps the snapshot
func (r *SnapshotRefresher) Refresh(ctx context.Context) error {
	products, err := r.productRepo.FindActive(ctx)
	if err != nil {
		return err
	}

	snapshot := catalog.NewSnapshot(products)
	r.current.Store(snapshot)
	r.logger.Debug("catalog snapshot refreshed",
		zap.Int("products", snapshot.Len()),
		zap.Time("taken_at", snapshot.TakenAt()),
	)
	return nil
}

// Current returns the latest snapshot. Never nil.
func (r *SnapshotRefresher) Current() *catalog.Snapshot {
	return r.current.Load()
}
