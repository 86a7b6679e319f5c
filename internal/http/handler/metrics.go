package handler

import (
	"github.com/prometheus/client_golang/prometheus"

	"docportal/internal/service"
)

// IngestMetrics counts uploaded files by outcome. A nil *IngestMetrics records nothing.
type IngestMetrics struct {
	files *prometheus.CounterVec
}

// NewIngestMetrics registers documents_ingested_total on reg.
func NewIngestMetrics(reg prometheus.Registerer) (*IngestMetrics, error) {
	m := &IngestMetrics{
		files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_ingested_total",
				Help: "Uploaded files processed, by result.",
			},
			[]string{"result"},
		),
	}
	if err := reg.Register(m.files); err != nil {
		return nil, err
	}
	return m, nil
}

// Observe adds the outcome of one batch.
func (m *IngestMetrics) Observe(res *service.IngestResult) {
	if m == nil || res == nil {
		return
	}
	m.files.WithLabelValues("accepted").Add(float64(len(res.Accepted)))
	m.files.WithLabelValues("rejected").Add(float64(len(res.Rejected)))
}
