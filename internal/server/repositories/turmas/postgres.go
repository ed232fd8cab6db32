package turmas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flaviaglenda/turmas/internal/common"
	"github.com/flaviaglenda/turmas/internal/dbx"
	"github.com/flaviaglenda/turmas/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, turma *models.Turma) (*models.Turma, error) {
	query := `
		INSERT INTO turmas (nome, numero, professor_id)
		VALUES ($1, $2, $3)
		RETURNING id, nome, numero, professor_id, created_at, updated_at
	`

	created := &models.Turma{}
	err := r.db.QueryRowContext(ctx, query, turma.Nome, turma.Numero, turma.ProfessorID).
		Scan(&created.ID, &created.Nome, &created.Numero, &created.ProfessorID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) ListByProfessor(ctx context.Context, professorID string) ([]*models.Turma, error) {
	query := `
		SELECT id, nome, numero, professor_id, created_at, updated_at
		FROM turmas
		WHERE professor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, professorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Turma{}
	for rows.Next() {
		turma := &models.Turma{}
		if err := rows.Scan(&turma.ID, &turma.Nome, &turma.Numero, &turma.ProfessorID, &turma.CreatedAt, &turma.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, turma)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Turma, error) {
	query := `
		SELECT id, nome, numero, professor_id, created_at, updated_at
		FROM turmas
		WHERE id = $1
	`

	turma := &models.Turma{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&turma.ID, &turma.Nome, &turma.Numero, &turma.ProfessorID, &turma.CreatedAt, &turma.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return turma, nil
}

func (r *PostgresRepository) Update(ctx context.Context, turma *models.Turma) (*models.Turma, error) {
	query := `
		UPDATE turmas
		SET nome = $2, numero = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, nome, numero, professor_id, created_at, updated_at
	`

	updated := &models.Turma{}
	err := r.db.QueryRowContext(ctx, query, turma.ID, turma.Nome, turma.Numero).
		Scan(&updated.ID, &updated.Nome, &updated.Numero, &updated.ProfessorID, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

// Delete removes the turma in a single conditional statement so the
// no-atividades guard cannot race with a concurrent atividade insert.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM turmas
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM atividades WHERE turma_id = $1)
	`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Nothing deleted: either the turma is gone or the guard blocked it.
	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM turmas WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if exists {
		return common.ErrTurmaHasAtividades
	}
	return common.ErrNotFound
}
