// Package professores declares the repository contract for teacher profiles.
package professores

import (
	"context"

	"github.com/flaviaglenda/turmas/internal/server/models"
)

// Repository defines storage operations for professores. A professor shares
// its id with the identity it belongs to.
type Repository interface {
	// Create stores a new professor profile. A profile that already exists
	// for the identity yields common.ErrProfessorExists.
	Create(ctx context.Context, professor *models.Professor) (*models.Professor, error)

	// GetByID returns the professor with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Professor, error)
}
