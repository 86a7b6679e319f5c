package repository

import (
	"context"
	"time"

	"docportal/internal/model"
)

// SyncStateRepository persists per-owner portal synchronization bookkeeping.
type SyncStateRepository interface {
	// Get returns the owner's state; an owner that never synchronized gets a zero state.
	Get(ctx context.Context, ownerID int64) (*model.SyncState, error)
	SaveLastSync(ctx context.Context, ownerID int64, at time.Time) error
}
