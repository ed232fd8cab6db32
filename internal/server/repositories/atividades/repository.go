// Package atividades declares the repository contract for activities.
package atividades

import (
	"context"

	"github.com/flaviaglenda/turmas/internal/server/models"
)

// Repository defines storage operations for atividades.
type Repository interface {
	// Create stores a new atividade and returns it with generated fields
	// filled. Numero is taken as given; the service decides numbering.
	Create(ctx context.Context, atividade *models.Atividade) (*models.Atividade, error)

	// ListByTurma returns the turma's atividades ordered by numero.
	ListByTurma(ctx context.Context, turmaID string) ([]*models.Atividade, error)

	// CountByTurma returns how many atividades the turma owns.
	CountByTurma(ctx context.Context, turmaID string) (int, error)

	// GetByID returns the atividade with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Atividade, error)

	// Update replaces titulo and descricao. Numero never changes after
	// creation. Returns the updated row, or common.ErrNotFound.
	Update(ctx context.Context, atividade *models.Atividade) (*models.Atividade, error)

	// Delete removes the atividade, or returns common.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
