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

// AtividadeService manages activities. Access always goes through the owning
// turma, so the professor scoping of TurmaService carries over.
type AtividadeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	turmas      *TurmaService
}

// NewAtividadeService constructs an AtividadeService.
func NewAtividadeService(db *sql.DB, m repomanager.RepositoryManager, turmas *TurmaService) *AtividadeService {
	return &AtividadeService{db: db, repomanager: m, turmas: turmas}
}

// Create stores a new atividade in one of the professor's turmas. Numero is
// stored exactly as sent; the client computes it and it is never renumbered.
func (s *AtividadeService) Create(ctx context.Context, professorID string, turmaID string, numero int, titulo string, descricao string) (*models.Atividade, error) {
	if _, err := s.turmas.Get(ctx, professorID, turmaID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Atividades(s.db)
	atividade, err := repo.Create(ctx, &models.Atividade{TurmaID: turmaID, Numero: numero, Titulo: titulo, Descricao: descricao})
	if err != nil {
		return nil, fmt.Errorf("error creating atividade: %w", err)
	}
	return atividade, nil
}

// List returns the turma's atividades ordered by numero.
func (s *AtividadeService) List(ctx context.Context, professorID string, turmaID string) ([]*models.Atividade, error) {
	if _, err := s.turmas.Get(ctx, professorID, turmaID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Atividades(s.db)
	result, err := repo.ListByTurma(ctx, turmaID)
	if err != nil {
		return nil, fmt.Errorf("error listing atividades: %w", err)
	}
	return result, nil
}

// Count returns how many atividades the turma owns.
func (s *AtividadeService) Count(ctx context.Context, professorID string, turmaID string) (int, error) {
	if _, err := s.turmas.Get(ctx, professorID, turmaID); err != nil {
		return 0, err
	}

	repo := s.repomanager.Atividades(s.db)
	count, err := repo.CountByTurma(ctx, turmaID)
	if err != nil {
		return 0, fmt.Errorf("error counting atividades: %w", err)
	}
	return count, nil
}

// Update replaces titulo and descricao of one of the professor's atividades.
func (s *AtividadeService) Update(ctx context.Context, professorID string, atividadeID string, titulo string, descricao string) (*models.Atividade, error) {
	if _, err := s.get(ctx, professorID, atividadeID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Atividades(s.db)
	atividade, err := repo.Update(ctx, &models.Atividade{ID: atividadeID, Titulo: titulo, Descricao: descricao})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating atividade: %w", err)
	}
	return atividade, nil
}

// Delete removes one of the professor's atividades.
func (s *AtividadeService) Delete(ctx context.Context, professorID string, atividadeID string) error {
	if _, err := s.get(ctx, professorID, atividadeID); err != nil {
		return err
	}

	repo := s.repomanager.Atividades(s.db)
	if err := repo.Delete(ctx, atividadeID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return fmt.Errorf("error deleting atividade: %w", err)
	}
	return nil
}

// get loads an atividade and verifies, through its turma, that it belongs to
// the professor. Foreign and missing atividades both yield
// common.ErrNotFound.
func (s *AtividadeService) get(ctx context.Context, professorID string, atividadeID string) (*models.Atividade, error) {
	repo := s.repomanager.Atividades(s.db)
	atividade, err := repo.GetByID(ctx, atividadeID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading atividade: %w", err)
	}
	if _, err := s.turmas.Get(ctx, professorID, atividade.TurmaID); err != nil {
		return nil, common.ErrNotFound
	}
	return atividade, nil
}
