package repository

import (
	"context"

	"docportal/internal/model"
)

// ActivityRepository appends audit entries.
type ActivityRepository interface {
	Record(ctx context.Context, a model.Activity) error
}
