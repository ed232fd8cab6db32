package professores

import (
	"context"
	"sync"
	"time"

	"github.com/flaviaglenda/turmas/internal/common"
	"github.com/flaviaglenda/turmas/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests and by the
// in-memory repository manager.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]*models.Professor
}

// NewInMemoryRepository constructs an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]*models.Professor)}
}

func (r *InMemoryRepository) Create(ctx context.Context, professor *models.Professor) (*models.Professor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[professor.ID]; ok {
		return nil, common.ErrProfessorExists
	}

	created := &models.Professor{
		ID:        professor.ID,
		Nome:      professor.Nome,
		CreatedAt: time.Now(),
	}
	r.rows[created.ID] = created

	out := *created
	return &out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Professor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *row
	return &out, nil
}
