// Package repomanager vends repository implementations behind a single
// interface so services stay storage-agnostic.
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

// RepositoryManager builds repositories bound to a DBTX, so services can run
// several repository calls inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Identities(db dbx.DBTX) identities.Repository
	Professores(db dbx.DBTX) professores.Repository
	Turmas(db dbx.DBTX) turmas.Repository
	Atividades(db dbx.DBTX) atividades.Repository
	RefreshSessions(db dbx.DBTX) refreshsessions.Repository
}
