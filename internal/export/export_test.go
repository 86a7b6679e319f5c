package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docportal/internal/model"
)

func sampleReport() Report {
	return Report{
		GeneratedBy: "Ana Pérez",
		GeneratedAt: time.Date(2025, 2, 3, 14, 5, 6, 0, time.UTC),
		Documents: []model.DocumentView{{
			OriginalName:            "invoice.pdf",
			Description:             "Q1 <supplier>",
			ExpirationDateFormatted: "20/03/2025",
			StatusText:              "Por vencer",
			SizeFormatted:           "2.00 KB",
			UploadedAtFormatted:     "01/02/2025 09:30",
		}},
		Stats: model.Stats{Total: 1, PorVencer: 1, TotalBytes: 2048},
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format  string
		want    Renderer
		wantErr error
	}{
		{format: "pdf", want: PDF{}},
		{format: "EXCEL", want: CSV{}},
		{format: " word ", want: Word{}},
		{format: "xml", wantErr: ErrUnsupportedFormat},
		{format: "", wantErr: ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			r, err := ForFormat(tt.format)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, r)
		})
	}
}

func TestCSV(t *testing.T) {
	f, err := CSV{}.Render(sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "document_report_2025-02-03_14-05-06.csv", f.Name)
	assert.True(t, bytes.HasPrefix(f.Body, []byte(utf8BOM)))
	body := string(f.Body)
	assert.Contains(t, body, "Generated by: Ana Pérez")
	assert.Contains(t, body, "Total documents,1")
	assert.Contains(t, body, "Total size,2.0 KiB")
	assert.Contains(t, body, "invoice.pdf,20/03/2025,Por vencer,Q1 <supplier>,2.00 KB,01/02/2025 09:30")
}

func TestWord_EscapesContent(t *testing.T) {
	f, err := Word{}.Render(sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "application/msword", f.ContentType)
	assert.True(t, strings.HasSuffix(f.Name, ".doc"))
	body := string(f.Body)
	assert.Contains(t, body, "Q1 &lt;supplier&gt;")
	assert.Contains(t, body, "<td>invoice.pdf</td>")
}

func TestPDF(t *testing.T) {
	f, err := PDF{}.Render(sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", f.ContentType)
	assert.True(t, bytes.HasPrefix(f.Body, []byte("%PDF-")))
}
