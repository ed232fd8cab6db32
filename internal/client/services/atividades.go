package services

import (
	"context"

	"github.com/flaviaglenda/turmas/internal/client/api"
)

type atividadeInput struct {
	Titulo    string `validate:"required"`
	Descricao string `validate:"required"`
}

// AtividadeService exposes the activity operations the UI needs.
type AtividadeService struct {
	backend api.Backend
}

func NewAtividadeService(backend api.Backend) *AtividadeService {
	return &AtividadeService{backend: backend}
}

// List returns the turma's atividades ordered by numero.
func (s *AtividadeService) List(ctx context.Context, turmaID string) ([]api.Atividade, error) {
	return s.backend.ListAtividades(ctx, turmaID)
}

// Create assigns the next sequential numero, one past the current count.
// Numbers are never reused, so deleting an atividade leaves a gap instead
// of renumbering the rest.
func (s *AtividadeService) Create(ctx context.Context, turmaID, titulo, descricao string) (*api.Atividade, error) {
	if err := validateStruct(atividadeInput{Titulo: titulo, Descricao: descricao}); err != nil {
		return nil, err
	}

	count, err := s.backend.CountAtividades(ctx, turmaID)
	if err != nil {
		return nil, err
	}
	return s.backend.CreateAtividade(ctx, turmaID, count+1, titulo, descricao)
}

func (s *AtividadeService) Update(ctx context.Context, id, titulo, descricao string) (*api.Atividade, error) {
	if err := validateStruct(atividadeInput{Titulo: titulo, Descricao: descricao}); err != nil {
		return nil, err
	}
	return s.backend.UpdateAtividade(ctx, id, titulo, descricao)
}

func (s *AtividadeService) Delete(ctx context.Context, id string) error {
	return s.backend.DeleteAtividade(ctx, id)
}
