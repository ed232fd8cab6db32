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

// ProfessorService manages teacher profiles. A profile shares its id with
// the identity it belongs to and is created at most once.
type ProfessorService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewProfessorService constructs a ProfessorService.
func NewProfessorService(db *sql.DB, m repomanager.RepositoryManager) *ProfessorService {
	return &ProfessorService{db: db, repomanager: m}
}

// Create stores the profile row for identityID. Creating a second profile
// for the same identity yields common.ErrProfessorExists.
func (s *ProfessorService) Create(ctx context.Context, identityID string, nome string) (*models.Professor, error) {
	repo := s.repomanager.Professores(s.db)
	professor, err := repo.Create(ctx, &models.Professor{ID: identityID, Nome: nome})
	if err != nil {
		if errors.Is(err, common.ErrProfessorExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating professor: %w", err)
	}
	return professor, nil
}

// GetByIdentity returns the profile of identityID, or
// common.ErrProfessorNotFound when none was created yet.
func (s *ProfessorService) GetByIdentity(ctx context.Context, identityID string) (*models.Professor, error) {
	repo := s.repomanager.Professores(s.db)
	professor, err := repo.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrProfessorNotFound
		}
		return nil, fmt.Errorf("error loading professor: %w", err)
	}
	return professor, nil
}
