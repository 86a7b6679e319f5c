package portal

import (
	"context"
	"time"

	"docportal/internal/expiry"
	"docportal/internal/model"
)

// Simulated is an in-process portal publishing a fixed catalogue whose
// expiration dates move with the clock. External ids are stable across calls.
type Simulated struct {
	url string
	now func() time.Time
}

var _ Client = (*Simulated)(nil)

// NewSimulated returns a simulated portal. A nil clock means time.Now.
func NewSimulated(url string, now func() time.Time) *Simulated {
	if now == nil {
		now = time.Now
	}
	return &Simulated{url: url, now: now}
}

func (s *Simulated) URL() string { return s.url }

func (s *Simulated) Ping(ctx context.Context) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Info{
		Name:           "Portal Empresarial Principal",
		Version:        "2.1.0",
		TotalDocuments: len(catalogue),
		APIStatus:      "active",
	}, nil
}

type entry struct {
	id, name, description, ext, mime string
	offsetDays                       int
	size                             int64
}

var catalogue = []entry{
	{"ext-001", "Contrato Corporativo 2024.pdf", "Contrato principal de la empresa para el año 2024", "pdf", "application/pdf", 90, 2048576},
	{"ext-002", "Informe Financiero Q4.xlsx", "Informe financiero del cuarto trimestre", "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", 30, 1536000},
	{"ext-003", "Políticas de Seguridad.docx", "Políticas actualizadas de seguridad de la información", "docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 180, 512000},
	{"ext-004", "Auditoría Interna 2023.pdf", "Informe de auditoría interna del año 2023", "pdf", "application/pdf", -10, 3072000},
}

func (s *Simulated) Fetch(ctx context.Context) ([]model.RemoteDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	today := expiry.Today(s.now())
	out := make([]model.RemoteDocument, 0, len(catalogue))
	for _, e := range catalogue {
		out = append(out, model.RemoteDocument{
			ExternalID:     e.id,
			Name:           e.name,
			Description:    e.description,
			ExpirationDate: today.AddDate(0, 0, e.offsetDays),
			SizeBytes:      e.size,
			MimeType:       e.mime,
			Extension:      e.ext,
		})
	}
	return out, nil
}
