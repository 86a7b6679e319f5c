package export

import (
	"bytes"
	"encoding/csv"
)

// utf8BOM makes spreadsheet applications detect the encoding.
const utf8BOM = "\xEF\xBB\xBF"

// CSV renders the "excel" format.
type CSV struct{}

func (CSV) Render(r Report) (*File, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	rows := [][]string{
		{"DOCUMENT REPORT"},
		{"Generated by: " + r.GeneratedBy},
		{"Date: " + r.GeneratedAt.Format("02/01/2006 15:04")},
		{},
		{"SUMMARY"},
	}
	for _, l := range summary(r.Stats) {
		rows = append(rows, []string{l.Label, l.Value})
	}
	rows = append(rows, []string{}, detailHeader)
	for _, d := range r.Documents {
		rows = append(rows, []string{
			d.OriginalName,
			d.ExpirationDateFormatted,
			d.StatusText,
			d.Description,
			d.SizeFormatted,
			d.UploadedAtFormatted,
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return &File{
		Name:        fileName(r.GeneratedAt, "csv"),
		ContentType: "text/csv; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}
