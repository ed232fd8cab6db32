// Package models holds the server-side row types. Repositories read and
// write these; services own their invariants.
package models

import "time"

// Identity is an authentication account. A Professor profile row may be
// linked to it one-to-one, keyed by the same id.
type Identity struct {
	ID           string
	Email        string
	PasswordHash []byte
	Confirmed    bool
	CreatedAt    time.Time
}
