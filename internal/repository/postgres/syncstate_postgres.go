package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"docportal/internal/model"
	"docportal/internal/repository"
)

// SyncStatePostgres keeps one portal_sync_state row per owner.
type SyncStatePostgres struct {
	db *sql.DB
}

func NewSyncStatePostgres(db *sql.DB) *SyncStatePostgres {
	return &SyncStatePostgres{db: db}
}

var _ repository.SyncStateRepository = (*SyncStatePostgres)(nil)

func (r *SyncStatePostgres) Get(ctx context.Context, ownerID int64) (*model.SyncState, error) {
	sqlStr, args, err := psql.Select("owner_id", "last_sync_at", "auto_sync").
		From("portal_sync_state").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var (
		st   model.SyncState
		last sql.NullTime
	)
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&st.OwnerID, &last, &st.AutoSync)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.SyncState{OwnerID: ownerID}, nil
	}
	if err != nil {
		return nil, err
	}
	if last.Valid {
		st.LastSyncAt = &last.Time
	}
	return &st, nil
}

// SaveLastSync upserts the owner's last synchronization time.
func (r *SyncStatePostgres) SaveLastSync(ctx context.Context, ownerID int64, at time.Time) error {
	sqlStr, args, err := psql.Insert("portal_sync_state").
		Columns("owner_id", "last_sync_at").
		Values(ownerID, at).
		Suffix("ON CONFLICT (owner_id) DO UPDATE SET last_sync_at = EXCLUDED.last_sync_at").
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
