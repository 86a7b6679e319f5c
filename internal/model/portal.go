package model

import "time"

// SyncState is the per-owner bookkeeping of the external portal synchronization.
type SyncState struct {
	OwnerID    int64
	LastSyncAt *time.Time
	AutoSync   bool
}

// RemoteDocument is a document record as published by the external portal.
type RemoteDocument struct {
	ExternalID     string
	Name           string
	Description    string
	ExpirationDate time.Time
	SizeBytes      int64
	MimeType       string
	Extension      string
}
