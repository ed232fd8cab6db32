package refreshsessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) Create(ctx context.Context, identityID string, tokenHash string, validity time.Duration) (*models.RefreshSession, error) {
	query := `
		INSERT INTO refresh_sessions (identity_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, identity_id, token_hash, created_at, expires_at, revoked_at
	`

	session := &models.RefreshSession{}
	err := r.db.QueryRowContext(ctx, query, identityID, tokenHash, time.Now().Add(validity)).
		Scan(&session.ID, &session.IdentityID, &session.TokenHash, &session.CreatedAt, &session.ExpiresAt, &session.RevokedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

func (r *PostgresRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshSession, error) {
	query := `
		SELECT id, identity_id, token_hash, created_at, expires_at, revoked_at
		FROM refresh_sessions
		WHERE token_hash = $1
	`

	session := &models.RefreshSession{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).
		Scan(&session.ID, &session.IdentityID, &session.TokenHash, &session.CreatedAt, &session.ExpiresAt, &session.RevokedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

func (r *PostgresRepository) Revoke(ctx context.Context, id string) error {
	query := `
		UPDATE refresh_sessions
		SET revoked_at = now()
		WHERE id = $1 AND revoked_at IS NULL
	`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RevokeAllForIdentity(ctx context.Context, identityID string) error {
	query := `
		UPDATE refresh_sessions
		SET revoked_at = now()
		WHERE identity_id = $1 AND revoked_at IS NULL
	`

	if _, err := r.db.ExecContext(ctx, query, identityID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
