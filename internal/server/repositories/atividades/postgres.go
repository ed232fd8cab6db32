package atividades

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

func (r *PostgresRepository) Create(ctx context.Context, atividade *models.Atividade) (*models.Atividade, error) {
	query := `
		INSERT INTO atividades (turma_id, numero, titulo, descricao)
		VALUES ($1, $2, $3, $4)
		RETURNING id, turma_id, numero, titulo, descricao, created_at
	`

	created := &models.Atividade{}
	err := r.db.QueryRowContext(ctx, query, atividade.TurmaID, atividade.Numero, atividade.Titulo, atividade.Descricao).
		Scan(&created.ID, &created.TurmaID, &created.Numero, &created.Titulo, &created.Descricao, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) ListByTurma(ctx context.Context, turmaID string) ([]*models.Atividade, error) {
	query := `
		SELECT id, turma_id, numero, titulo, descricao, created_at
		FROM atividades
		WHERE turma_id = $1
		ORDER BY numero ASC
	`

	rows, err := r.db.QueryContext(ctx, query, turmaID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Atividade{}
	for rows.Next() {
		atividade := &models.Atividade{}
		if err := rows.Scan(&atividade.ID, &atividade.TurmaID, &atividade.Numero, &atividade.Titulo, &atividade.Descricao, &atividade.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, atividade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) CountByTurma(ctx context.Context, turmaID string) (int, error) {
	query := `
		SELECT count(*)
		FROM atividades
		WHERE turma_id = $1
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, turmaID).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Atividade, error) {
	query := `
		SELECT id, turma_id, numero, titulo, descricao, created_at
		FROM atividades
		WHERE id = $1
	`

	atividade := &models.Atividade{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&atividade.ID, &atividade.TurmaID, &atividade.Numero, &atividade.Titulo, &atividade.Descricao, &atividade.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return atividade, nil
}

func (r *PostgresRepository) Update(ctx context.Context, atividade *models.Atividade) (*models.Atividade, error) {
	query := `
		UPDATE atividades
		SET titulo = $2, descricao = $3
		WHERE id = $1
		RETURNING id, turma_id, numero, titulo, descricao, created_at
	`

	updated := &models.Atividade{}
	err := r.db.QueryRowContext(ctx, query, atividade.ID, atividade.Titulo, atividade.Descricao).
		Scan(&updated.ID, &updated.TurmaID, &updated.Numero, &updated.Titulo, &updated.Descricao, &updated.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM atividades
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
