package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flaviaglenda/turmas/internal/common"
	"github.com/flaviaglenda/turmas/internal/server/models"
	"github.com/flaviaglenda/turmas/internal/server/repositories/repomanager"
)

// TurmaService manages classes. Every operation is scoped to the owning
// professor; a turma owned by someone else behaves as if it did not exist.
type TurmaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTurmaService constructs a TurmaService.
func NewTurmaService(db *sql.DB, m repomanager.RepositoryManager) *TurmaService {
	return &TurmaService{db: db, repomanager: m}
}

// Create stores a new turma owned by professorID.
func (s *TurmaService) Create(ctx context.Context, professorID string, nome string, numero int) (*models.Turma, error) {
	repo := s.repomanager.Turmas(s.db)
	turma, err := repo.Create(ctx, &models.Turma{Nome: nome, Numero: numero, ProfessorID: professorID})
	if err != nil {
		return nil, fmt.Errorf("error creating turma: %w", err)
	}
	return turma, nil
}

// List returns the professor's turmas, newest first.
func (s *TurmaService) List(ctx context.Context, professorID string) ([]*models.Turma, error) {
	repo := s.repomanager.Turmas(s.db)
	result, err := repo.ListByProfessor(ctx, professorID)
	if err != nil {
		return nil, fmt.Errorf("error listing turmas: %w", err)
	}
	return result, nil
}

// Get returns one of the professor's turmas, or common.ErrNotFound.
func (s *TurmaService) Get(ctx context.Context, professorID string, turmaID string) (*models.Turma, error) {
	repo := s.repomanager.Turmas(s.db)
	turma, err := repo.GetByID(ctx, turmaID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading turma: %w", err)
	}
	if turma.ProfessorID != professorID {
		return nil, common.ErrNotFound
	}
	return turma, nil
}

// Update replaces nome and numero of one of the professor's turmas.
func (s *TurmaService) Update(ctx context.Context, professorID string, turmaID string, nome string, numero int) (*models.Turma, error) {
	if _, err := s.Get(ctx, professorID, turmaID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Turmas(s.db)
	turma, err := repo.Update(ctx, &models.Turma{ID: turmaID, Nome: nome, Numero: numero})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating turma: %w", err)
	}
	return turma, nil
}

// Delete removes one of the professor's turmas. A turma that still owns
// atividades yields common.ErrTurmaHasAtividades and nothing is deleted.
func (s *TurmaService) Delete(ctx context.Context, professorID string, turmaID string) error {
	if _, err := s.Get(ctx, professorID, turmaID); err != nil {
		return err
	}

	repo := s.repomanager.Turmas(s.db)
	if err := repo.Delete(ctx, turmaID); err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrTurmaHasAtividades) {
			return err
		}
		return fmt.Errorf("error deleting turma: %w", err)
	}
	return nil
}
