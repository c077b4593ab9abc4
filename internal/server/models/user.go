// Package models contains server-side storage records.
package models

import "time"

// User is the stored credential record owned by the credential store. It
// never travels inside tokens; the claims value in the token package is the
// request-side identity, joined to this record only by Username.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	University   string
	CreatedAt    time.Time
}
