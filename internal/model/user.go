package model

import "time"

// User is an account allowed to sign in to the portal.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	Active       bool
	CreatedAt    time.Time
}

// SessionUser is the authenticated identity attached to a request.
type SessionUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	TokenID  string `json:"-"`
	// ExpiresAt is when the session token stops being accepted.
	ExpiresAt time.Time `json:"-"`
}
