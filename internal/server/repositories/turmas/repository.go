// Package turmas declares the repository contract for classes.
package turmas

import (
	"context"

	"github.com/flaviaglenda/turmas/internal/server/models"
)

// Repository defines storage operations for turmas. Ownership checks belong
// to the service layer; the repository works on raw rows.
type Repository interface {
	// Create stores a new turma and returns it with generated fields filled.
	Create(ctx context.Context, turma *models.Turma) (*models.Turma, error)

	// ListByProfessor returns the professor's turmas, newest first.
	ListByProfessor(ctx context.Context, professorID string) ([]*models.Turma, error)

	// GetByID returns the turma with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Turma, error)

	// Update replaces nome and numero and bumps updated_at. Returns the
	// updated row, or common.ErrNotFound.
	Update(ctx context.Context, turma *models.Turma) (*models.Turma, error)

	// Delete removes the turma only when it has no atividades. A turma that
	// still owns atividades yields common.ErrTurmaHasAtividades; a missing
	// turma yields common.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
