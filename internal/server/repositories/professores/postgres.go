package professores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flaviaglenda/turmas/internal/common"
	"github.com/flaviaglenda/turmas/internal/dbx"
	"github.com/flaviaglenda/turmas/internal/server/models"
)

const pgUniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, professor *models.Professor) (*models.Professor, error) {
	query := `
		INSERT INTO professores (id, nome)
		VALUES ($1, $2)
		RETURNING id, nome, created_at
	`

	created := &models.Professor{}
	err := r.db.QueryRowContext(ctx, query, professor.ID, professor.Nome).
		Scan(&created.ID, &created.Nome, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrProfessorExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Professor, error) {
	query := `
		SELECT id, nome, created_at
		FROM professores
		WHERE id = $1
	`

	professor := &models.Professor{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&professor.ID, &professor.Nome, &professor.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return professor, nil
}
