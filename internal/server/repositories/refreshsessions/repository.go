// Package refreshsessions declares the repository contract for refresh token
// sessions. Only token hashes touch storage; the opaque token itself stays
// with the client.
package refreshsessions

import (
	"context"
	"time"

	"github.com/flaviaglenda/turmas/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh sessions.
type Repository interface {
	// Create stores a new session for identityID with an expiry of
	// now+validity.
	Create(ctx context.Context, identityID string, tokenHash string, validity time.Duration) (*models.RefreshSession, error)

	// FindByTokenHash looks up a session by token hash, or returns
	// common.ErrNotFound.
	FindByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshSession, error)

	// Revoke marks a single session as revoked.
	Revoke(ctx context.Context, id string) error

	// RevokeAllForIdentity revokes every live session of an identity.
	// Sign-out uses it so stolen refresh tokens die with the session.
	RevokeAllForIdentity(ctx context.Context, identityID string) error
}
