package turmas

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
// in-memory repository manager. hasAtividades reports whether a turma still
// owns atividades; the manager wires it to the atividades repository so the
// delete guard works across the two stores.
type InMemoryRepository struct {
	mu            sync.RWMutex
	rows          map[string]*models.Turma
	hasAtividades func(ctx context.Context, turmaID string) (bool, error)
}

// NewInMemoryRepository constructs an empty in-memory repository. A nil
// hasAtividades disables the delete guard.
func NewInMemoryRepository(hasAtividades func(ctx context.Context, turmaID string) (bool, error)) *InMemoryRepository {
	return &InMemoryRepository{
		rows:          make(map[string]*models.Turma),
		hasAtividades: hasAtividades,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, turma *models.Turma) (*models.Turma, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	created := &models.Turma{
		ID:          uuid.NewString(),
		Nome:        turma.Nome,
		Numero:      turma.Numero,
		ProfessorID: turma.ProfessorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.rows[created.ID] = created

	out := *created
	return &out, nil
}

func (r *InMemoryRepository) ListByProfessor(ctx context.Context, professorID string) ([]*models.Turma, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Turma{}
	for _, row := range r.rows {
		if row.ProfessorID == professorID {
			out := *row
			result = append(result, &out)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Turma, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *row
	return &out, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, turma *models.Turma) (*models.Turma, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[turma.ID]
	if !ok {
		return nil, common.ErrNotFound
	}

	row.Nome = turma.Nome
	row.Numero = turma.Numero
	row.UpdatedAt = time.Now()

	out := *row
	return &out, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return common.ErrNotFound
	}

	if r.hasAtividades != nil {
		has, err := r.hasAtividades(ctx, id)
		if err != nil {
			return err
		}
		if has {
			return common.ErrTurmaHasAtividades
		}
	}

	delete(r.rows, id)
	return nil
}
