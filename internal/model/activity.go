package model

import "time"

// Action names an auditable user operation.
type Action string

const (
	ActionUpload     Action = "upload"
	ActionDelete     Action = "delete"
	ActionView       Action = "view"
	ActionDownload   Action = "download"
	ActionExport     Action = "export"
	ActionSyncPortal Action = "sync_portal"
	ActionLogin      Action = "login"
	ActionLogout     Action = "logout"
)

// Activity is one append-only audit entry.
type Activity struct {
	ID          int64
	UserID      int64
	Action      Action
	Description string
	IPAddress   string
	UserAgent   string
	CreatedAt   time.Time
}

// Actor identifies who triggered an operation and from where.
type Actor struct {
	UserID    int64
	IPAddress string
	UserAgent string
}
