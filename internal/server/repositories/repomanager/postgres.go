package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/flaviaglenda/turmas/internal/dbx"
	"github.com/flaviaglenda/turmas/internal/server/migrations"
	"github.com/flaviaglenda/turmas/internal/server/repositories/atividades"
	"github.com/flaviaglenda/turmas/internal/server/repositories/identities"
	"github.com/flaviaglenda/turmas/internal/server/repositories/professores"
	"github.com/flaviaglenda/turmas/internal/server/repositories/refreshsessions"
	"github.com/flaviaglenda/turmas/internal/server/repositories/turmas"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed
// RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Identities returns an identities.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Identities(db dbx.DBTX) identities.Repository {
	return identities.NewPostgresRepository(db)
}

// Professores returns a professores.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Professores(db dbx.DBTX) professores.Repository {
	return professores.NewPostgresRepository(db)
}

// Turmas returns a turmas.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Turmas(db dbx.DBTX) turmas.Repository {
	return turmas.NewPostgresRepository(db)
}

// Atividades returns an atividades.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Atividades(db dbx.DBTX) atividades.Repository {
	return atividades.NewPostgresRepository(db)
}

// RefreshSessions returns a refreshsessions.Repository bound to the provided
// DBTX.
func (m *PostgresRepositoryManager) RefreshSessions(db dbx.DBTX) refreshsessions.Repository {
	return refreshsessions.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
