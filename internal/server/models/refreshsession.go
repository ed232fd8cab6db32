package models

import "time"

// RefreshSession is a stored refresh token issued on sign-in. Only the hash
// of the token is kept.
type RefreshSession struct {
	ID         string
	IdentityID string
	TokenHash  string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	RevokedAt  *time.Time
}
