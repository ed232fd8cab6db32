// Package identities declares the repository contract for authentication
// accounts.
package identities

import (
	"context"

	"github.com/flaviaglenda/turmas/internal/server/models"
)

// Repository defines storage operations for identities.
type Repository interface {
	// Create stores a new identity. A duplicate email yields
	// common.ErrEmailTaken.
	Create(ctx context.Context, email string, passwordHash []byte, confirmed bool) (*models.Identity, error)

	// GetByEmail returns the identity registered under email, or
	// common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Identity, error)

	// GetByID returns the identity with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Identity, error)
}
