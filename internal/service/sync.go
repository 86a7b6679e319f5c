package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"docportal/internal/expiry"
	"docportal/internal/filecheck"
	"docportal/internal/logger"
	"docportal/internal/model"
	"docportal/internal/portal"
	"docportal/internal/repository"
)

var (
	ErrInvalidSyncType   = errors.New("sync type must be all, new or updated")
	ErrPortalUnavailable = errors.New("external portal unavailable")
)

// SyncType narrows which remote documents a synchronization considers.
type SyncType string

const (
	SyncAll SyncType = "all"
	// SyncNew considers documents that are currently vigente and never updates existing rows.
	SyncNew SyncType = "new"
	// SyncUpdated considers documents that are currently por_vencer.
	SyncUpdated SyncType = "updated"
)

// ParseSyncType defaults to SyncAll for an empty value.
func ParseSyncType(s string) (SyncType, error) {
	switch SyncType(s) {
	case "", SyncAll:
		return SyncAll, nil
	case SyncNew, SyncUpdated:
		return SyncType(s), nil
	}
	return "", ErrInvalidSyncType
}

func (t SyncType) includes(s model.Status) bool {
	switch t {
	case SyncNew:
		return s == model.StatusVigente
	case SyncUpdated:
		return s == model.StatusPorVencer
	}
	return true
}

// SyncConfig is the portal configuration as shown to a user.
type SyncConfig struct {
	PortalURL       string     `json:"portal_url"`
	APIKey          string     `json:"api_key"`
	LastSync        *time.Time `json:"last_sync"`
	AutoSync        bool       `json:"auto_sync"`
	SyncedDocuments int64      `json:"synced_documents"`
}

// ConnectionResult is the outcome of a connection test.
type ConnectionResult struct {
	Connected bool         `json:"connected"`
	Message   string       `json:"message"`
	LatencyMS int64        `json:"latency_ms"`
	Portal    *portal.Info `json:"portal,omitempty"`
}

// SyncResult counts what one synchronization did.
type SyncResult struct {
	Imported       int      `json:"imported"`
	Updated        int      `json:"updated"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
	TotalProcessed int      `json:"total_processed"`
}

// SyncStatus is the synchronization bookkeeping of one owner.
type SyncStatus struct {
	LastSync      *time.Time `json:"last_sync"`
	AutoSync      bool       `json:"auto_sync"`
	TotalImported int64      `json:"total_imported"`
}

// SyncService imports documents from the external portal.
type SyncService interface {
	Config(ctx context.Context, ownerID int64) (*SyncConfig, error)
	TestConnection(ctx context.Context) (*ConnectionResult, error)
	Sync(ctx context.Context, actor model.Actor, typ SyncType) (*SyncResult, error)
	Status(ctx context.Context, ownerID int64) (*SyncStatus, error)
}

type syncService struct {
	client   portal.Client
	apiKey   string
	docs     repository.DocumentRepository
	state    repository.SyncStateRepository
	activity repository.ActivityRepository
	now      func() time.Time
	log      *logger.Logger
}

// NewSyncService constructs a SyncService. apiKey is only used for masked display.
func NewSyncService(client portal.Client, apiKey string, docs repository.DocumentRepository, state repository.SyncStateRepository,
	activity repository.ActivityRepository, opts ...Option) SyncService {
	o := buildOptions(opts)
	return &syncService{
		client:   client,
		apiKey:   apiKey,
		docs:     docs,
		state:    state,
		activity: activity,
		now:      o.now,
		log:      o.log.Component("portal-sync"),
	}
}

func (s *syncService) Config(ctx context.Context, ownerID int64) (*SyncConfig, error) {
	st, err := s.state.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	n, err := s.docs.CountExternal(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &SyncConfig{
		PortalURL:       s.client.URL(),
		APIKey:          MaskSecret(s.apiKey),
		LastSync:        st.LastSyncAt,
		AutoSync:        st.AutoSync,
		SyncedDocuments: n,
	}, nil
}

func (s *syncService) TestConnection(ctx context.Context) (*ConnectionResult, error) {
	ctx, span := tracer.Start(ctx, "SyncService.TestConnection")
	defer span.End()

	start := time.Now()
	info, err := s.client.Ping(ctx)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.log.Warn("portal connection test failed", "url", s.client.URL(), "err", err)
		return &ConnectionResult{Connected: false, Message: "Could not connect to the external portal", LatencyMS: latency}, nil
	}
	return &ConnectionResult{
		Connected: true,
		Message:   "Connected to the external portal",
		LatencyMS: latency,
		Portal:    info,
	}, nil
}

func (s *syncService) Sync(ctx context.Context, actor model.Actor, typ SyncType) (*SyncResult, error) {
	ctx, span := tracer.Start(ctx, "SyncService.Sync")
	defer span.End()
	span.SetAttributes(attribute.String("sync_type", string(typ)), attribute.Int64("owner_id", actor.UserID))

	if _, err := ParseSyncType(string(typ)); err != nil {
		return nil, err
	}
	remote, err := s.client.Fetch(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrPortalUnavailable, err)
	}

	now := s.now()
	res := &SyncResult{Errors: make([]string, 0)}
	for _, rd := range remote {
		cls := expiry.Classify(rd.ExpirationDate, now)
		if !typ.includes(cls.Status) {
			continue
		}
		doc := remoteToDocument(actor.UserID, rd, cls.Status)

		_, err := s.docs.FindByExternalID(ctx, actor.UserID, rd.ExternalID)
		switch {
		case err == nil:
			if typ == SyncNew {
				res.Skipped++
				continue
			}
			n, err := s.docs.UpdateByExternalID(ctx, doc)
			if err != nil {
				s.syncError(res, rd, err)
				continue
			}
			if n == 0 {
				res.Skipped++
				continue
			}
			res.Updated++
		case errors.Is(err, sql.ErrNoRows):
			if _, err := s.docs.Create(ctx, doc); err != nil {
				s.syncError(res, rd, err)
				continue
			}
			res.Imported++
		default:
			s.syncError(res, rd, err)
		}
	}
	res.TotalProcessed = res.Imported + res.Updated + res.Skipped

	if err := s.state.SaveLastSync(ctx, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("save sync state: %w", err)
	}
	recordActivity(ctx, s.activity, s.log, actor, model.ActionSyncPortal,
		fmt.Sprintf("Portal synchronization: %d imported, %d updated", res.Imported, res.Updated))

	span.SetAttributes(
		attribute.Int("imported", res.Imported),
		attribute.Int("updated", res.Updated),
		attribute.Int("skipped", res.Skipped),
		attribute.Int("errors", len(res.Errors)),
	)
	return res, nil
}

func (s *syncService) syncError(res *SyncResult, rd model.RemoteDocument, err error) {
	s.log.Error("portal document not saved", "external_id", rd.ExternalID, "err", err)
	res.Errors = append(res.Errors, "could not save "+rd.Name)
}

func (s *syncService) Status(ctx context.Context, ownerID int64) (*SyncStatus, error) {
	st, err := s.state.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	n, err := s.docs.CountExternal(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &SyncStatus{LastSync: st.LastSyncAt, AutoSync: st.AutoSync, TotalImported: n}, nil
}

// remoteToDocument maps a portal record to a row. Synced rows have no stored object.
func remoteToDocument(ownerID int64, rd model.RemoteDocument, status model.Status) *model.Document {
	ext := rd.Extension
	if ext == "" {
		ext = filecheck.Extension(rd.Name)
	}
	mime := rd.MimeType
	if mime == "" {
		mime, _ = filecheck.ExpectedMime(ext)
	}
	id := rd.ExternalID
	return &model.Document{
		OwnerID:        ownerID,
		OriginalName:   rd.Name,
		StoredPath:     "portal/" + id,
		Extension:      ext,
		MimeType:       mime,
		SizeBytes:      rd.SizeBytes,
		Description:    rd.Description,
		ExpirationDate: rd.ExpirationDate,
		Status:         status,
		ExternalID:     &id,
	}
}

// MaskSecret keeps only the last four characters visible.
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
