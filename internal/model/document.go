package model

import "time"

// Status is the expiration state of a document.
type Status string

const (
	StatusVigente   Status = "vigente"
	StatusPorVencer Status = "por_vencer"
	StatusVencido   Status = "vencido"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusVigente, StatusPorVencer, StatusVencido:
		return true
	}
	return false
}

// Document is one uploaded (or synchronized) file owned by a single user.
type Document struct {
	ID             int64
	OwnerID        int64
	OriginalName   string
	StoredPath     string
	Extension      string
	MimeType       string
	SizeBytes      int64
	Description    string
	ExpirationDate time.Time
	// Status is the snapshot persisted at write time. Read paths recompute it.
	Status     Status
	UploadedAt time.Time
	UpdatedAt  time.Time
	ExternalID *string
}

// DocumentView is the enriched representation returned by the API and used by exports.
type DocumentView struct {
	ID                      int64  `json:"id"`
	OriginalName            string `json:"original_name"`
	Description             string `json:"description"`
	ExpirationDate          string `json:"expiration_date"`
	ExpirationDateFormatted string `json:"expiration_date_formatted"`
	Status                  Status `json:"status"`
	StatusClass             string `json:"status_class"`
	StatusText              string `json:"status_text"`
	UploadedAt              string `json:"uploaded_at"`
	UploadedAtFormatted     string `json:"uploaded_at_formatted"`
	SizeBytes               int64  `json:"size_bytes"`
	SizeFormatted           string `json:"size_formatted"`
	Extension               string `json:"extension"`
	Icon                    string `json:"icon"`
	IsImage                 bool   `json:"is_image"`
	RemainingLabel          string `json:"remaining_label"`
	RemainingClass          string `json:"remaining_class"`
	DaysRemaining           int    `json:"days_remaining"`
	External                bool   `json:"external"`
}

// Stats aggregates one owner's documents by expiration state.
type Stats struct {
	Total              int64  `json:"total"`
	Vigentes           int64  `json:"vigentes"`
	PorVencer          int64  `json:"por_vencer"`
	Vencidos           int64  `json:"vencidos"`
	TotalBytes         int64  `json:"total_bytes"`
	TotalSizeFormatted string `json:"total_size_formatted"`
}
