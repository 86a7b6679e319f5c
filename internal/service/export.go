package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docportal/internal/export"
	"docportal/internal/logger"
	"docportal/internal/model"
	"docportal/internal/repository"
)

// ExportService renders the caller's documents as a report file.
type ExportService interface {
	Export(ctx context.Context, user *model.SessionUser, actor model.Actor, format string) (*export.File, error)
}

type exportService struct {
	docs     DocumentService
	activity repository.ActivityRepository
	now      func() time.Time
	log      *logger.Logger
}

// NewExportService builds reports on top of the document read paths. activity may be nil.
func NewExportService(docs DocumentService, activity repository.ActivityRepository, opts ...Option) ExportService {
	o := buildOptions(opts)
	return &exportService{
		docs:     docs,
		activity: activity,
		now:      o.now,
		log:      o.log.Component("export"),
	}
}

func (s *exportService) Export(ctx context.Context, user *model.SessionUser, actor model.Actor, format string) (*export.File, error) {
	renderer, err := export.ForFormat(format)
	if err != nil {
		return nil, err
	}
	views, err := s.docs.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	stats, err := s.docs.Stats(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	generatedBy := user.FullName
	if generatedBy == "" {
		generatedBy = user.Username
	}
	f, err := renderer.Render(export.Report{
		GeneratedBy: generatedBy,
		GeneratedAt: s.now(),
		Documents:   views,
		Stats:       *stats,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}

	actor.UserID = user.ID
	recordActivity(ctx, s.activity, s.log, actor, model.ActionExport,
		fmt.Sprintf("Exported %s report with %d documents", strings.ToLower(format), len(views)))
	return f, nil
}
