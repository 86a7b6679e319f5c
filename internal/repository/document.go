package repository

import (
	"context"
	"time"

	"docportal/internal/model"
)

// SearchFilter narrows an owner's documents. Zero values disable a criterion.
type SearchFilter struct {
	// Term matches name or description, case-insensitively, as a substring.
	Term string
	// Status restricts to one expiration state, evaluated against Today.
	Status model.Status
	Today  time.Time
}

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, only persistence.
type DocumentRepository interface {
	// Create inserts a new document and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document regardless of owner, or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// ListByOwner returns every document of ownerID, newest upload first.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Document, error)

	// Search returns ownerID's documents matching f, newest upload first.
	Search(ctx context.Context, ownerID int64, f SearchFilter) ([]model.Document, error)

	// Stats aggregates ownerID's documents by expiration state as of today.
	Stats(ctx context.Context, ownerID int64, today time.Time) (*model.Stats, error)

	// Delete removes the row only if it belongs to ownerID and reports how many rows went away.
	Delete(ctx context.Context, id, ownerID int64) (int64, error)

	// FindByExternalID looks up a synchronized document, or sql.ErrNoRows.
	FindByExternalID(ctx context.Context, ownerID int64, externalID string) (*model.Document, error)

	// UpdateByExternalID rewrites the mutable fields of a synchronized document.
	UpdateByExternalID(ctx context.Context, doc *model.Document) (int64, error)

	// CountExternal counts ownerID's documents that came from synchronization.
	CountExternal(ctx context.Context, ownerID int64) (int64, error)

	// RefreshStatuses re-persists the status snapshot of every row whose stored status is stale.
	RefreshStatuses(ctx context.Context, today time.Time) (int64, error)
}
