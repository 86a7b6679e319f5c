// Package filecheck decides whether an uploaded file may be stored.
package filecheck

import (
	"errors"
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes is the upload ceiling (10 MiB).
const DefaultMaxBytes int64 = 10 * 1024 * 1024

var (
	ErrTooLarge        = errors.New("exceeds size limit")
	ErrTypeNotAllowed  = errors.New("type not allowed")
	ErrMimeMismatch    = errors.New("mime mismatch")
	ErrContentMismatch = errors.New("content does not match extension")
)

// allowed maps each accepted extension to its canonical MIME type.
var allowed = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

// alternates lists other declared types browsers send for the same extension.
// application/octet-stream is deliberately absent.
var alternates = map[string][]string{
	"jpg":  {"image/pjpeg"},
	"jpeg": {"image/pjpeg"},
	"png":  {"image/x-png"},
}

// sniffed lists the detected types (or ancestors) accepted for an extension in strict mode.
var sniffed = map[string][]string{
	"pdf":  {"application/pdf"},
	"doc":  {"application/msword", "application/x-ole-storage"},
	"xls":  {"application/vnd.ms-excel", "application/x-ole-storage"},
	"docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/zip"},
	"jpg":  {"image/jpeg"},
	"jpeg": {"image/jpeg"},
	"png":  {"image/png"},
}

// Validator checks single files. The zero value is not usable; use New.
type Validator struct {
	maxBytes int64
	strict   bool
}

// New returns a Validator with the given size ceiling. A non-positive ceiling selects DefaultMaxBytes.
// With strict set, callers are expected to also run ValidateContent on the file's leading bytes.
func New(maxBytes int64, strict bool) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Validator{maxBytes: maxBytes, strict: strict}
}

// Strict reports whether content sniffing is enabled.
func (v *Validator) Strict() bool { return v.strict }

// MaxBytes is the configured size ceiling.
func (v *Validator) MaxBytes() int64 { return v.maxBytes }

// Validate applies the size, extension and declared-type checks in that order.
// The first failing check is returned.
func (v *Validator) Validate(filename, declaredMime string, size int64) error {
	if size > v.maxBytes {
		return ErrTooLarge
	}
	ext := Extension(filename)
	expected, ok := allowed[ext]
	if !ok {
		return ErrTypeNotAllowed
	}
	declared := NormalizeMime(declaredMime)
	if declared == expected {
		return nil
	}
	for _, alt := range alternates[ext] {
		if declared == alt {
			return nil
		}
	}
	return ErrMimeMismatch
}

// ValidateContent sniffs the leading bytes of a file and checks them against its extension.
// It is a no-op unless the validator is strict.
func (v *Validator) ValidateContent(filename string, head []byte) error {
	if !v.strict {
		return nil
	}
	accept := sniffed[Extension(filename)]
	for m := mimetype.Detect(head); m != nil; m = m.Parent() {
		for _, a := range accept {
			if m.Is(a) {
				return nil
			}
		}
	}
	return ErrContentMismatch
}

// Extension returns the lower-cased extension of filename without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// ExpectedMime returns the canonical type for an allowed extension.
func ExpectedMime(ext string) (string, bool) {
	m, ok := allowed[strings.ToLower(ext)]
	return m, ok
}

// AllowedExtensions returns the allow-list in lexical order.
func AllowedExtensions() []string {
	out := make([]string, 0, len(allowed))
	for ext := range allowed {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// IsImage reports whether the extension is previewable inline.
func IsImage(ext string) bool {
	switch strings.ToLower(ext) {
	case "jpg", "jpeg", "png":
		return true
	}
	return false
}

// Icon returns the icon token used by the UI for an extension.
func Icon(ext string) string {
	switch strings.ToLower(ext) {
	case "pdf":
		return "file-pdf"
	case "doc", "docx":
		return "file-word"
	case "xls", "xlsx":
		return "file-excel"
	case "jpg", "jpeg", "png":
		return "file-image"
	}
	return "file"
}

// NormalizeMime lower-cases a media type and drops its parameters.
func NormalizeMime(s string) string {
	if mt, _, err := mime.ParseMediaType(s); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(s))
}
