package atividades

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flaviaglenda/turmas/internal/common"
	"github.com/flaviaglenda/turmas/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests and by the
// in-memory repository manager.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]*models.Atividade
}

// NewInMemoryRepository constructs an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]*models.Atividade)}
}

func (r *InMemoryRepository) Create(ctx context.Context, atividade *models.Atividade) (*models.Atividade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := &models.Atividade{
		ID:        uuid.NewString(),
		TurmaID:   atividade.TurmaID,
		Numero:    atividade.Numero,
		Titulo:    atividade.Titulo,
		Descricao: atividade.Descricao,
		CreatedAt: time.Now(),
	}
	r.rows[created.ID] = created

	out := *created
	return &out, nil
}

func (r *InMemoryRepository) ListByTurma(ctx context.Context, turmaID string) ([]*models.Atividade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Atividade{}
	for _, row := range r.rows {
		if row.TurmaID == turmaID {
			out := *row
			result = append(result, &out)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Numero < result[j].Numero
	})

	return result, nil
}

func (r *InMemoryRepository) CountByTurma(ctx context.Context, turmaID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, row := range r.rows {
		if row.TurmaID == turmaID {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Atividade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *row
	return &out, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, atividade *models.Atividade) (*models.Atividade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[atividade.ID]
	if !ok {
		return nil, common.ErrNotFound
	}

	row.Titulo = atividade.Titulo
	row.Descricao = atividade.Descricao

	out := *row
	return &out, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
