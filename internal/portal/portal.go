// Package portal talks to the external document portal that documents are synchronized from.
package portal

import (
	"context"
	"errors"

	"docportal/internal/model"
)

// ErrNotConfigured is returned when the portal URL or API key is missing.
var ErrNotConfigured = errors.New("portal url and api key are required")

// Info describes the remote portal as reported by a connection test.
type Info struct {
	Name           string `json:"portal_name"`
	Version        string `json:"version"`
	TotalDocuments int    `json:"total_documents"`
	APIStatus      string `json:"api_status"`
}

// Client reads documents from a remote portal.
type Client interface {
	// Ping checks reachability and credentials.
	Ping(ctx context.Context) (*Info, error)
	// Fetch returns every document the portal publishes for this account.
	Fetch(ctx context.Context) ([]model.RemoteDocument, error)
	// URL is the configured portal endpoint, for display.
	URL() string
}
