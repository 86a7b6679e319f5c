package postgres

import (
	"context"
	"database/sql"

	"docportal/internal/model"
	"docportal/internal/repository"
)

// ActivityPostgres appends rows to activity_log.
type ActivityPostgres struct {
	db *sql.DB
}

func NewActivityPostgres(db *sql.DB) *ActivityPostgres {
	return &ActivityPostgres{db: db}
}

var _ repository.ActivityRepository = (*ActivityPostgres)(nil)

func (r *ActivityPostgres) Record(ctx context.Context, a model.Activity) error {
	sqlStr, args, err := psql.Insert("activity_log").
		Columns("user_id", "action", "description", "ip_address", "user_agent").
		Values(a.UserID, string(a.Action), a.Description, a.IPAddress, a.UserAgent).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
