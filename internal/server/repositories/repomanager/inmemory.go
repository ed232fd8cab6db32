package repomanager

import (
	"context"
	"database/sql"

	"github.com/flaviaglenda/turmas/internal/dbx"
	"github.com/flaviaglenda/turmas/internal/server/repositories/atividades"
	"github.com/flaviaglenda/turmas/internal/server/repositories/identities"
	"github.com/flaviaglenda/turmas/internal/server/repositories/professores"
	"github.com/flaviaglenda/turmas/internal/server/repositories/refreshsessions"
	"github.com/flaviaglenda/turmas/internal/server/repositories/turmas"
)

// InMemoryRepositoryManager vends map-backed repositories sharing one state.
// The DBTX argument is ignored; tests pass nil.
type InMemoryRepositoryManager struct {
	identities      *identities.InMemoryRepository
	professores     *professores.InMemoryRepository
	turmas          *turmas.InMemoryRepository
	atividades      *atividades.InMemoryRepository
	refreshSessions *refreshsessions.InMemoryRepository
}

// NewInMemoryRepositoryManager constructs an empty in-memory store. The
// turmas delete guard is wired to the atividades repository.
func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	atividadesRepo := atividades.NewInMemoryRepository()

	hasAtividades := func(ctx context.Context, turmaID string) (bool, error) {
		count, err := atividadesRepo.CountByTurma(ctx, turmaID)
		if err != nil {
			return false, err
		}
		return count > 0, nil
	}

	return &InMemoryRepositoryManager{
		identities:      identities.NewInMemoryRepository(),
		professores:     professores.NewInMemoryRepository(),
		turmas:          turmas.NewInMemoryRepository(hasAtividades),
		atividades:      atividadesRepo,
		refreshSessions: refreshsessions.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Identities(db dbx.DBTX) identities.Repository {
	return m.identities
}

func (m *InMemoryRepositoryManager) Professores(db dbx.DBTX) professores.Repository {
	return m.professores
}

func (m *InMemoryRepositoryManager) Turmas(db dbx.DBTX) turmas.Repository {
	return m.turmas
}

func (m *InMemoryRepositoryManager) Atividades(db dbx.DBTX) atividades.Repository {
	return m.atividades
}

func (m *InMemoryRepositoryManager) RefreshSessions(db dbx.DBTX) refreshsessions.Repository {
	return m.refreshSessions
}

// IdentitiesInMemory exposes the concrete identities store so tests can
// flip the confirmation flag.
func (m *InMemoryRepositoryManager) IdentitiesInMemory() *identities.InMemoryRepository {
	return m.identities
}
