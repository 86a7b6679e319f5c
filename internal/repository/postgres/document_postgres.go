package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"docportal/internal/expiry"
	"docportal/internal/model"
	"docportal/internal/repository"
)

const documentsTable = "documents"

var errExternalIDRequired = errors.New("external id is required")

var documentColumns = []string{
	"id", "owner_id", "original_name", "stored_path", "extension", "mime_type", "size_bytes",
	"description", "expiration_date", "status", "uploaded_at", "updated_at", "external_id",
}

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// Queries are built with squirrel and executed through database/sql; it contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var (
		d      model.Document
		status string
		extID  sql.NullString
	)
	if err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.OriginalName,
		&d.StoredPath,
		&d.Extension,
		&d.MimeType,
		&d.SizeBytes,
		&d.Description,
		&d.ExpirationDate,
		&status,
		&d.UploadedAt,
		&d.UpdatedAt,
		&extID,
	); err != nil {
		return nil, err
	}
	d.Status = model.Status(status)
	if extID.Valid {
		d.ExternalID = &extID.String
	}
	return &d, nil
}

func (r *DocumentPostgres) queryDocuments(ctx context.Context, q sq.SelectBuilder) ([]model.Document, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *DocumentPostgres) queryDocument(ctx context.Context, q sq.SelectBuilder) (*model.Document, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return scanDocument(r.db.QueryRowContext(ctx, sqlStr, args...))
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	q := psql.Insert(documentsTable).
		Columns("owner_id", "original_name", "stored_path", "extension", "mime_type", "size_bytes",
			"description", "expiration_date", "status", "external_id").
		Values(
			doc.OwnerID,
			doc.OriginalName,
			doc.StoredPath,
			doc.Extension,
			doc.MimeType,
			doc.SizeBytes,
			doc.Description,
			expiry.Date(doc.ExpirationDate),
			string(doc.Status),
			doc.ExternalID,
		).
		Suffix("RETURNING " + strings.Join(documentColumns, ", "))

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return scanDocument(r.db.QueryRowContext(ctx, sqlStr, args...))
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	return r.queryDocument(ctx, psql.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"id": id}))
}

// ListByOwner returns every document of the owner, most recent upload first.
func (r *DocumentPostgres) ListByOwner(ctx context.Context, ownerID int64) ([]model.Document, error) {
	return r.queryDocuments(ctx, psql.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("uploaded_at DESC", "id DESC"))
}

// Search applies the optional term and status filters on top of the owner filter.
// The status filter is evaluated on expiration_date, not on the stored snapshot.
func (r *DocumentPostgres) Search(ctx context.Context, ownerID int64, f repository.SearchFilter) ([]model.Document, error) {
	q := psql.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"owner_id": ownerID})

	if term := strings.TrimSpace(f.Term); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		q = q.Where(sq.Or{
			sq.ILike{"original_name": pattern},
			sq.ILike{"description": pattern},
		})
	}

	if f.Status.Valid() {
		from, to := expiry.Range(f.Status, f.Today)
		if !from.IsZero() {
			q = q.Where(sq.GtOrEq{"expiration_date": from})
		}
		if !to.IsZero() {
			q = q.Where(sq.Lt{"expiration_date": to})
		}
	}

	return r.queryDocuments(ctx, q.OrderBy("uploaded_at DESC", "id DESC"))
}

// Stats counts the owner's documents per expiration state in a single pass.
func (r *DocumentPostgres) Stats(ctx context.Context, ownerID int64, today time.Time) (*model.Stats, error) {
	today = expiry.Date(today)
	_, warnEnd := expiry.Range(model.StatusPorVencer, today)

	q := psql.Select("COUNT(*)").
		Column("COUNT(*) FILTER (WHERE expiration_date >= ?)", warnEnd).
		Column("COUNT(*) FILTER (WHERE expiration_date >= ? AND expiration_date < ?)", today, warnEnd).
		Column("COUNT(*) FILTER (WHERE expiration_date < ?)", today).
		Column("COALESCE(SUM(size_bytes), 0)").
		From(documentsTable).
		Where(sq.Eq{"owner_id": ownerID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var s model.Stats
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(
		&s.Total,
		&s.Vigentes,
		&s.PorVencer,
		&s.Vencidos,
		&s.TotalBytes,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a document owned by ownerID and returns the number of deleted rows.
// Zero means the row was already gone or belongs to someone else.
func (r *DocumentPostgres) Delete(ctx context.Context, id, ownerID int64) (int64, error) {
	sqlStr, args, err := psql.Delete(documentsTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// FindByExternalID fetches a synchronized document of the owner.
func (r *DocumentPostgres) FindByExternalID(ctx context.Context, ownerID int64, externalID string) (*model.Document, error) {
	return r.queryDocument(ctx, psql.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"owner_id": ownerID, "external_id": externalID}))
}

// UpdateByExternalID rewrites the fields the portal is authoritative for.
func (r *DocumentPostgres) UpdateByExternalID(ctx context.Context, doc *model.Document) (int64, error) {
	if doc.ExternalID == nil || *doc.ExternalID == "" {
		return 0, errExternalIDRequired
	}
	sqlStr, args, err := psql.Update(documentsTable).
		Set("original_name", doc.OriginalName).
		Set("description", doc.Description).
		Set("expiration_date", expiry.Date(doc.ExpirationDate)).
		Set("status", string(doc.Status)).
		Set("size_bytes", doc.SizeBytes).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"owner_id": doc.OwnerID, "external_id": doc.ExternalID}).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountExternal counts the owner's synchronized documents.
func (r *DocumentPostgres) CountExternal(ctx context.Context, ownerID int64) (int64, error) {
	sqlStr, args, err := psql.Select("COUNT(*)").
		From(documentsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.NotEq{"external_id": nil}).
		ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// RefreshStatuses rewrites every stale status snapshot in one statement.
func (r *DocumentPostgres) RefreshStatuses(ctx context.Context, today time.Time) (int64, error) {
	today = expiry.Date(today)
	_, warnEnd := expiry.Range(model.StatusPorVencer, today)

	current := sq.Case().
		When(sq.Lt{"expiration_date": today}, "'"+string(model.StatusVencido)+"'").
		When(sq.Lt{"expiration_date": warnEnd}, "'"+string(model.StatusPorVencer)+"'").
		Else("'" + string(model.StatusVigente) + "'")

	sqlStr, args, err := psql.Update(documentsTable).
		Set("status", current).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Expr("status <> ?", current)).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// escapeLike neutralizes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
