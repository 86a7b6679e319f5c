package export

import (
	"bytes"
	"html/template"
)

var wordTemplate = template.Must(template.New("word").Parse(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word">
<head>
<meta charset="utf-8">
<title>Document Report</title>
<style>
body { font-family: Arial, sans-serif; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px; }
th { background: #eee; }
</style>
</head>
<body>
<h1>Document Report</h1>
<p>Generated by: {{.GeneratedBy}}<br>Date: {{.Date}}</p>
<h2>Summary</h2>
{{range .Summary}}<p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{end}}<h2>Detail</h2>
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Documents}}<tr><td>{{.OriginalName}}</td><td>{{.ExpirationDateFormatted}}</td><td>{{.StatusText}}</td><td>{{.Description}}</td><td>{{.SizeFormatted}}</td><td>{{.UploadedAtFormatted}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// Word renders an HTML document that word processors open as .doc.
type Word struct{}

func (Word) Render(r Report) (*File, error) {
	var buf bytes.Buffer
	err := wordTemplate.Execute(&buf, map[string]any{
		"GeneratedBy": r.GeneratedBy,
		"Date":        r.GeneratedAt.Format("02/01/2006 15:04"),
		"Summary":     summary(r.Stats),
		"Header":      detailHeader,
		"Documents":   r.Documents,
	})
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        fileName(r.GeneratedAt, "doc"),
		ContentType: "application/msword",
		Body:        buf.Bytes(),
	}, nil
}
