package refreshsessions

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
	rows map[string]*models.RefreshSession
}

// NewInMemoryRepository constructs an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]*models.RefreshSession)}
}

func (r *InMemoryRepository) Create(ctx context.Context, identityID string, tokenHash string, validity time.Duration) (*models.RefreshSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	session := &models.RefreshSession{
		ID:         uuid.NewString(),
		IdentityID: identityID,
		TokenHash:  tokenHash,
		CreatedAt:  now,
		ExpiresAt:  now.Add(validity),
	}
	r.rows[session.ID] = session

	out := *session
	return &out, nil
}

func (r *InMemoryRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.TokenHash == tokenHash {
			out := *row
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) Revoke(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil
	}
	if row.RevokedAt == nil {
		now := time.Now()
		row.RevokedAt = &now
	}
	return nil
}

func (r *InMemoryRepository) RevokeAllForIdentity(ctx context.Context, identityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, row := range r.rows {
		if row.IdentityID == identityID && row.RevokedAt == nil {
			row.RevokedAt = &now
		}
	}
	return nil
}
