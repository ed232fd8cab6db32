package services

import (
	"context"

	"github.com/flaviaglenda/turmas/internal/client/api"
	"github.com/flaviaglenda/turmas/internal/common"
)

type turmaInput struct {
	Nome   string `validate:"required"`
	Numero int    `validate:"required,min=1"`
}

// TurmaService exposes the class operations the UI needs.
type TurmaService struct {
	backend api.Backend
}

func NewTurmaService(backend api.Backend) *TurmaService {
	return &TurmaService{backend: backend}
}

// List returns the professor's turmas, newest first.
func (s *TurmaService) List(ctx context.Context) ([]api.Turma, error) {
	return s.backend.ListTurmas(ctx)
}

func (s *TurmaService) Create(ctx context.Context, nome string, numero int) (*api.Turma, error) {
	if err := validateStruct(turmaInput{Nome: nome, Numero: numero}); err != nil {
		return nil, err
	}
	return s.backend.CreateTurma(ctx, nome, numero)
}

func (s *TurmaService) Update(ctx context.Context, id, nome string, numero int) (*api.Turma, error) {
	if err := validateStruct(turmaInput{Nome: nome, Numero: numero}); err != nil {
		return nil, err
	}
	return s.backend.UpdateTurma(ctx, id, nome, numero)
}

// Delete removes a turma, refusing while it still has atividades. The count
// check runs first so the common case fails fast with a clear message; the
// server enforces the same rule for anything that slips between the check
// and the delete.
func (s *TurmaService) Delete(ctx context.Context, id string) error {
	count, err := s.backend.CountAtividades(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return common.ErrTurmaHasAtividades
	}
	return s.backend.DeleteTurma(ctx, id)
}
