package identities

import (
	"context"
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
	rows map[string]*models.Identity
}

// NewInMemoryRepository constructs an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]*models.Identity)}
}

func (r *InMemoryRepository) Create(ctx context.Context, email string, passwordHash []byte, confirmed bool) (*models.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row.Email == email {
			return nil, common.ErrEmailTaken
		}
	}

	identity := &models.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Confirmed:    confirmed,
		CreatedAt:    time.Now(),
	}
	r.rows[identity.ID] = identity

	out := *identity
	return &out, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.Email == email {
			out := *row
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *row
	return &out, nil
}

// Confirm marks an identity as confirmed. Only tests use it; the sign-in
// confirmation gate has no other way to flip in memory.
func (r *InMemoryRepository) Confirm(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if row, ok := r.rows[id]; ok {
		row.Confirmed = true
	}
}
