package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"docportal/internal/model"
	"docportal/internal/repository"
)

// UserPostgres stores portal accounts.
type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts an account and returns it with its generated id and timestamp.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	sqlStr, args, err := psql.Insert("users").
		Columns("username", "password_hash", "full_name", "email", "active").
		Values(u.Username, u.PasswordHash, u.FullName, u.Email, u.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	out := *u
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserPostgres) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	sqlStr, args, err := psql.Select("id", "username", "password_hash", "full_name", "email", "active", "created_at").
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.FullName,
		&u.Email,
		&u.Active,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
