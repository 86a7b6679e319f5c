package filecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	v := New(0, false)

	tests := []struct {
		name     string
		filename string
		mime     string
		size     int64
		wantErr  error
	}{
		{"pdf ok", "invoice.pdf", "application/pdf", 2048, nil},
		{"upper-case extension", "SCAN.PNG", "image/png", 10, nil},
		{"declared with parameters", "notes.doc", "application/msword; charset=binary", 10, nil},
		{"jpeg alternate", "photo.jpg", "image/pjpeg", 10, nil},
		{"exactly at ceiling", "big.pdf", "application/pdf", 10 * 1024 * 1024, nil},
		{"one byte over ceiling", "big.pdf", "application/pdf", 10*1024*1024 + 1, ErrTooLarge},
		{"size checked before type", "big.exe", "application/x-msdownload", 10*1024*1024 + 1, ErrTooLarge},
		{"extension not allowed", "script.exe", "application/pdf", 10, ErrTypeNotAllowed},
		{"no extension", "README", "text/plain", 10, ErrTypeNotAllowed},
		{"txt rejected whatever the mime", "notes.txt", "text/plain", 10, ErrTypeNotAllowed},
		{"mime mismatch", "report.pdf", "image/png", 10, ErrMimeMismatch},
		{"octet-stream not special", "report.docx", "application/octet-stream", 10, ErrMimeMismatch},
		{"empty mime", "sheet.xlsx", "", 10, ErrMimeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.filename, tt.mime, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidate_EveryAllowedExtension(t *testing.T) {
	v := New(0, false)
	for _, ext := range AllowedExtensions() {
		m, ok := ExpectedMime(ext)
		assert.True(t, ok)
		assert.NoError(t, v.Validate("file."+ext, m, 1), ext)
	}
	assert.Len(t, AllowedExtensions(), 8)
}

func TestValidate_CustomCeiling(t *testing.T) {
	v := New(100, false)
	assert.NoError(t, v.Validate("a.pdf", "application/pdf", 100))
	assert.ErrorIs(t, v.Validate("a.pdf", "application/pdf", 101), ErrTooLarge)
}

func TestValidateContent(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

	t.Run("lenient mode trusts the declaration", func(t *testing.T) {
		v := New(0, false)
		assert.NoError(t, v.ValidateContent("fake.pdf", []byte("just text")))
	})

	t.Run("strict accepts matching content", func(t *testing.T) {
		v := New(0, true)
		assert.NoError(t, v.ValidateContent("real.pdf", pdf))
		assert.NoError(t, v.ValidateContent("real.png", png))
	})

	t.Run("strict rejects disguised content", func(t *testing.T) {
		v := New(0, true)
		assert.ErrorIs(t, v.ValidateContent("fake.pdf", []byte("just text")), ErrContentMismatch)
		assert.ErrorIs(t, v.ValidateContent("fake.png", pdf), ErrContentMismatch)
	})
}

func TestPresentationHelpers(t *testing.T) {
	assert.Equal(t, "pdf", Extension("a.b.PDF"))
	assert.Equal(t, "", Extension("noext"))
	assert.True(t, IsImage("JPEG"))
	assert.False(t, IsImage("pdf"))
	assert.Equal(t, "file-word", Icon("docx"))
	assert.Equal(t, "file-excel", Icon("xls"))
	assert.Equal(t, "file-image", Icon("png"))
	assert.Equal(t, "file-pdf", Icon("pdf"))
	assert.Equal(t, "file", Icon("zip"))
}
