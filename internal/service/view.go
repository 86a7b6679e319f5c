package service

import (
	"fmt"
	"time"

	"docportal/internal/expiry"
	"docportal/internal/filecheck"
	"docportal/internal/model"
)

const (
	displayDate     = "02/01/2006"
	displayDateTime = "02/01/2006 15:04"
)

// NewDocumentView enriches a stored document for display. The status is
// recomputed from the expiration date as of now; the persisted snapshot is ignored.
func NewDocumentView(d model.Document, now time.Time) model.DocumentView {
	cls := expiry.Classify(d.ExpirationDate, now)
	return model.DocumentView{
		ID:                      d.ID,
		OriginalName:            d.OriginalName,
		Description:             d.Description,
		ExpirationDate:          d.ExpirationDate.Format(DateLayout),
		ExpirationDateFormatted: d.ExpirationDate.Format(displayDate),
		Status:                  cls.Status,
		StatusClass:             expiry.StatusClass(cls.Status),
		StatusText:              expiry.StatusText(cls.Status),
		UploadedAt:              d.UploadedAt.In(now.Location()).Format(time.RFC3339),
		UploadedAtFormatted:     d.UploadedAt.In(now.Location()).Format(displayDateTime),
		SizeBytes:               d.SizeBytes,
		SizeFormatted:           FormatSize(d.SizeBytes),
		Extension:               d.Extension,
		Icon:                    filecheck.Icon(d.Extension),
		IsImage:                 filecheck.IsImage(d.Extension),
		RemainingLabel:          cls.Label,
		RemainingClass:          cls.Severity.Class(),
		DaysRemaining:           cls.DaysRemaining,
		External:                d.ExternalID != nil,
	}
}

// NewDocumentViews maps a slice; the result is never nil.
func NewDocumentViews(docs []model.Document, now time.Time) []model.DocumentView {
	out := make([]model.DocumentView, 0, len(docs))
	for _, d := range docs {
		out = append(out, NewDocumentView(d, now))
	}
	return out
}

// FormatSize renders a byte count with binary units and two decimals.
func FormatSize(b int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.2f GB", float64(b)/gb)
	case b >= mb:
		return fmt.Sprintf("%.2f MB", float64(b)/mb)
	case b >= kb:
		return fmt.Sprintf("%.2f KB", float64(b)/kb)
	}
	return fmt.Sprintf("%d B", b)
}
