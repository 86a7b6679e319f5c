package service

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"docportal/internal/expiry"
	"docportal/internal/filecheck"
	"docportal/internal/logger"
	"docportal/internal/model"
	"docportal/internal/repository"
	"docportal/internal/storage"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrNotFound            = errors.New("document not found")
	ErrForbidden           = errors.New("not permitted")
	ErrStorageFailure      = errors.New("storage failure")
	ErrFileMissing         = errors.New("physical file missing")
	ErrNoFiles             = errors.New("no files received")
	ErrExpirationRequired  = errors.New("expiration date is required")
	ErrInvalidExpiration   = errors.New("invalid expiration date, expected YYYY-MM-DD")
	ErrExpirationNotFuture = errors.New("expiration date must be after today")
)

// DateLayout is the wire format of expiration dates.
const DateLayout = "2006-01-02"

const sniffLen = 512

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

var tracer = otel.Tracer("docportal/service")

// UploadedFile is one part of a multipart upload. Open is called at most once.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// IngestRequest is a batch upload sharing one description and one expiration date.
type IngestRequest struct {
	Actor          model.Actor
	Files          []UploadedFile
	Description    string
	ExpirationDate string
}

// AcceptedFile summarizes a stored document.
type AcceptedFile struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	SizeBytes     int64        `json:"size"`
	SizeFormatted string       `json:"size_formatted"`
	Status        model.Status `json:"status"`
}

// RejectedFile explains why one file of the batch was not stored.
type RejectedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// IngestResult is the per-file outcome of a batch.
type IngestResult struct {
	Accepted   []AcceptedFile `json:"accepted"`
	Rejected   []RejectedFile `json:"rejected"`
	TotalFiles int            `json:"total_files"`
}

// Download is an opened document ready to be streamed. The caller closes Body.
type Download struct {
	Document    *model.Document
	Body        io.ReadCloser
	Size        int64
	ContentType string
	Inline      bool
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Ingest validates and stores a batch. Batch-level problems fail the whole call;
	// per-file problems are reported in the result.
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)

	// Delete removes a document owned by the actor from storage, then from the repository.
	Delete(ctx context.Context, actor model.Actor, id int64) (*model.Document, error)

	// List returns the owner's documents, newest first.
	List(ctx context.Context, ownerID int64) ([]model.DocumentView, error)

	// Get returns one of the owner's documents.
	Get(ctx context.Context, ownerID, id int64) (*model.DocumentView, error)

	// Search filters the owner's documents by term and expiration state.
	Search(ctx context.Context, ownerID int64, term string, status model.Status) ([]model.DocumentView, error)

	// Stats counts the owner's documents per expiration state.
	Stats(ctx context.Context, ownerID int64) (*model.Stats, error)

	// Open prepares a document for download or inline preview.
	Open(ctx context.Context, actor model.Actor, id int64, preview bool) (*Download, error)

	// RefreshStatuses re-persists stale status snapshots for every owner.
	RefreshStatuses(ctx context.Context) (int64, error)
}

// Option customizes a document service.
type Option func(*options)

type options struct {
	validator *filecheck.Validator
	now       func() time.Time
	log       *logger.Logger
}

// WithValidator replaces the default file validator.
func WithValidator(v *filecheck.Validator) Option {
	return func(o *options) { o.validator = v }
}

// WithClock sets the source of the current time. Its location decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger used for failures that do not reach the caller.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(opts []Option) options {
	o := options{
		validator: filecheck.New(filecheck.DefaultMaxBytes, false),
		now:       time.Now,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store     storage.Storage
	repo      repository.DocumentRepository
	activity  repository.ActivityRepository
	validator *filecheck.Validator
	now       func() time.Time
	log       *logger.Logger
}

// NewDocumentService constructs a new DocumentService. activity may be nil.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, activity repository.ActivityRepository, opts ...Option) DocumentService {
	o := buildOptions(opts)
	return &documentService{
		store:     store,
		repo:      repo,
		activity:  activity,
		validator: o.validator,
		now:       o.now,
		log:       o.log.Component("documents"),
	}
}

func (s *documentService) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Ingest")
	defer span.End()
	span.SetAttributes(attribute.Int("files", len(req.Files)), attribute.Int64("owner_id", req.Actor.UserID))

	if len(req.Files) == 0 {
		return nil, ErrNoFiles
	}
	now := s.now()
	exp, err := ParseExpiration(req.ExpirationDate, now)
	if err != nil {
		return nil, err
	}

	res := &IngestResult{
		Accepted:   make([]AcceptedFile, 0, len(req.Files)),
		Rejected:   make([]RejectedFile, 0),
		TotalFiles: len(req.Files),
	}
	for _, f := range req.Files {
		doc, err := s.ingestOne(ctx, req, f, exp, now)
		if err != nil {
			res.Rejected = append(res.Rejected, RejectedFile{Filename: f.Filename, Reason: s.rejectReason(f.Filename, err)})
			continue
		}
		res.Accepted = append(res.Accepted, AcceptedFile{
			ID:            doc.ID,
			Name:          doc.OriginalName,
			SizeBytes:     doc.SizeBytes,
			SizeFormatted: FormatSize(doc.SizeBytes),
			Status:        doc.Status,
		})
		s.record(ctx, req.Actor, model.ActionUpload, "Uploaded document: "+doc.OriginalName)
	}

	span.SetAttributes(attribute.Int("accepted", len(res.Accepted)), attribute.Int("rejected", len(res.Rejected)))
	return res, nil
}

func (s *documentService) ingestOne(ctx context.Context, req IngestRequest, f UploadedFile, exp, now time.Time) (*model.Document, error) {
	name := filepath.Base(f.Filename)
	if err := s.validator.Validate(name, f.ContentType, f.Size); err != nil {
		return nil, err
	}
	if f.Open == nil {
		return nil, errors.New("file content unavailable")
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer rc.Close()

	var body io.Reader = rc
	if s.validator.Strict() {
		br := bufio.NewReaderSize(rc, sniffLen)
		head, err := br.Peek(sniffLen)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		if err := s.validator.ValidateContent(name, head); err != nil {
			return nil, err
		}
		body = br
	}

	objInfo, err := s.store.Put(ctx, StorageKey(name), body, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: filecheck.NormalizeMime(f.ContentType),
		Metadata: map[string]string{
			"original-filename": name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	cls := expiry.Classify(exp, now)
	doc := &model.Document{
		OwnerID:        req.Actor.UserID,
		OriginalName:   name,
		StoredPath:     objInfo.Key,
		Extension:      filecheck.Extension(name),
		MimeType:       filecheck.NormalizeMime(f.ContentType),
		SizeBytes:      objInfo.Size,
		Description:    strings.TrimSpace(req.Description),
		ExpirationDate: exp,
		Status:         cls.Status,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, objInfo.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// rejectReason keeps validation messages and hides infrastructure detail.
func (s *documentService) rejectReason(filename string, err error) string {
	switch {
	case errors.Is(err, filecheck.ErrTooLarge),
		errors.Is(err, filecheck.ErrTypeNotAllowed),
		errors.Is(err, filecheck.ErrMimeMismatch),
		errors.Is(err, filecheck.ErrContentMismatch):
		return err.Error()
	}
	s.log.Error("file not stored", "filename", filename, "err", err)
	return "could not be stored"
}

func (s *documentService) Delete(ctx context.Context, actor model.Actor, id int64) (*model.Document, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != actor.UserID {
		return nil, ErrForbidden
	}
	// Storage first: a failure here keeps the row, so nothing points at a missing file.
	if err := s.store.Delete(ctx, doc.StoredPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	n, err := s.repo.Delete(ctx, id, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("delete row: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	s.record(ctx, actor, model.ActionDelete, "Deleted document: "+doc.OriginalName)
	return doc, nil
}

func (s *documentService) List(ctx context.Context, ownerID int64) ([]model.DocumentView, error) {
	docs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return NewDocumentViews(docs, s.now()), nil
}

func (s *documentService) Get(ctx context.Context, ownerID, id int64) (*model.DocumentView, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	v := NewDocumentView(*doc, s.now())
	return &v, nil
}

func (s *documentService) Search(ctx context.Context, ownerID int64, term string, status model.Status) ([]model.DocumentView, error) {
	now := s.now()
	f := repository.SearchFilter{Term: strings.TrimSpace(term), Today: expiry.Today(now)}
	if status.Valid() {
		f.Status = status
	}
	docs, err := s.repo.Search(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}
	return NewDocumentViews(docs, now), nil
}

func (s *documentService) Stats(ctx context.Context, ownerID int64) (*model.Stats, error) {
	st, err := s.repo.Stats(ctx, ownerID, expiry.Today(s.now()))
	if err != nil {
		return nil, err
	}
	st.TotalSizeFormatted = FormatSize(st.TotalBytes)
	return st, nil
}

func (s *documentService) Open(ctx context.Context, actor model.Actor, id int64, preview bool) (*Download, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != actor.UserID {
		return nil, ErrNotFound
	}
	body, info, err := s.store.Get(ctx, doc.StoredPath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrFileMissing
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	dl := &Download{
		Document:    doc,
		Body:        body,
		Size:        info.Size,
		ContentType: doc.MimeType,
		Inline:      preview && filecheck.IsImage(doc.Extension),
	}
	if dl.ContentType == "" {
		dl.ContentType = "application/octet-stream"
	}
	if dl.Size <= 0 {
		dl.Size = doc.SizeBytes
	}

	if dl.Inline {
		s.record(ctx, actor, model.ActionView, "Viewed document: "+doc.OriginalName)
	} else {
		s.record(ctx, actor, model.ActionDownload, "Downloaded document: "+doc.OriginalName)
	}
	return dl, nil
}

func (s *documentService) RefreshStatuses(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.RefreshStatuses")
	defer span.End()

	n, err := s.repo.RefreshStatuses(ctx, expiry.Today(s.now()))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	span.SetAttributes(attribute.Int64("updated", n))
	return n, nil
}

func (s *documentService) find(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) record(ctx context.Context, actor model.Actor, action model.Action, desc string) {
	recordActivity(ctx, s.activity, s.log, actor, action, desc)
}

// recordActivity appends an audit entry. Failures are logged and otherwise ignored.
func recordActivity(ctx context.Context, repo repository.ActivityRepository, log *logger.Logger, actor model.Actor, action model.Action, desc string) {
	if repo == nil {
		return
	}
	err := repo.Record(ctx, model.Activity{
		UserID:      actor.UserID,
		Action:      action,
		Description: desc,
		IPAddress:   actor.IPAddress,
		UserAgent:   actor.UserAgent,
	})
	if err != nil {
		log.Warn("activity not recorded", "action", action, "user_id", actor.UserID, "err", err)
	}
}

// ParseExpiration reads a YYYY-MM-DD date and requires it to fall after the date of now.
func ParseExpiration(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrExpirationRequired
	}
	exp, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, ErrInvalidExpiration
	}
	if expiry.DaysBetween(now, exp) <= 0 {
		return time.Time{}, ErrExpirationNotFuture
	}
	return exp, nil
}

// StorageKey builds a collision-free object key that keeps the original name readable.
func StorageKey(filename string) string {
	return uuid.NewString() + "_" + unsafeNameChars.ReplaceAllString(filepath.Base(filename), "_")
}
