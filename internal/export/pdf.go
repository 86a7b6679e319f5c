package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// PDF renders an A4 table report.
type PDF struct{}

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Document", 70, "L"},
	{"Expires", 30, "C"},
	{"Status", 25, "C"},
	{"Size", 30, "R"},
	{"Uploaded", 35, "C"},
}

func (PDF) Render(r Report) (*File, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Document Report", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Document Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, tr("Generated by: "+r.GeneratedBy), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Date: "+r.GeneratedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, l := range summary(r.Stats) {
		pdf.CellFormat(60, 8, l.Label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, l.Value, "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Detail", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, c := range pdfColumns {
		ln := 0
		if i == len(pdfColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 7, c.title, "1", ln, "C", true, 0, "")
	}

	pdf.SetFont("Arial", "", 9)
	for _, d := range r.Documents {
		name := d.OriginalName
		if len([]rune(name)) > 40 {
			name = string([]rune(name)[:37]) + "..."
		}
		cells := []string{name, d.ExpirationDateFormatted, d.StatusText, d.SizeFormatted, d.UploadedAtFormatted}
		for i, c := range pdfColumns {
			ln := 0
			if i == len(pdfColumns)-1 {
				ln = 1
			}
			pdf.CellFormat(c.width, 7, tr(cells[i]), "1", ln, c.align, false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &File{
		Name:        fileName(r.GeneratedAt, "pdf"),
		ContentType: "application/pdf",
		Body:        buf.Bytes(),
	}, nil
}
