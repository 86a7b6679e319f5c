package repository

import (
	"context"

	"docportal/internal/model"
)

// UserRepository stores portal accounts.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// FindByUsername returns sql.ErrNoRows when no account matches.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
