// Package export renders a user's document list as a downloadable report.
package export

import (
	"errors"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"docportal/internal/model"
)

// ErrUnsupportedFormat is returned for any format other than pdf, excel or word.
var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	FormatPDF   = "pdf"
	FormatExcel = "excel"
	FormatWord  = "word"
)

// Report is everything a renderer needs. Documents are already enriched views.
type Report struct {
	GeneratedBy string
	GeneratedAt time.Time
	Documents   []model.DocumentView
	Stats       model.Stats
}

// File is a rendered report.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Renderer produces one file format.
type Renderer interface {
	Render(r Report) (*File, error)
}

// ForFormat picks the renderer for a format name, case-insensitively.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatPDF:
		return PDF{}, nil
	case FormatExcel:
		return CSV{}, nil
	case FormatWord:
		return Word{}, nil
	}
	return nil, ErrUnsupportedFormat
}

func fileName(at time.Time, ext string) string {
	return "document_report_" + at.Format("2006-01-02_15-04-05") + "." + ext
}

type summaryLine struct {
	Label string
	Value string
}

func summary(s model.Stats) []summaryLine {
	return []summaryLine{
		{"Total documents", humanize.Comma(s.Total)},
		{"Vigentes", humanize.Comma(s.Vigentes)},
		{"Por vencer", humanize.Comma(s.PorVencer)},
		{"Vencidos", humanize.Comma(s.Vencidos)},
		{"Total size", humanize.IBytes(uint64(max(s.TotalBytes, 0)))},
	}
}

var detailHeader = []string{"Document", "Expires", "Status", "Description", "Size", "Uploaded"}
