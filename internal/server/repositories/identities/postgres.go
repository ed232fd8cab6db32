package identities

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

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
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

func (r *PostgresRepository) Create(ctx context.Context, email string, passwordHash []byte, confirmed bool) (*models.Identity, error) {
	query := `
		INSERT INTO identities (email, password_hash, confirmed)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, confirmed, created_at
	`

	identity := &models.Identity{}
	err := r.db.QueryRowContext(ctx, query, email, passwordHash, confirmed).
		Scan(&identity.ID, &identity.Email, &identity.PasswordHash, &identity.Confirmed, &identity.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	query := `
		SELECT id, email, password_hash, confirmed, created_at
		FROM identities
		WHERE email = $1
	`

	identity := &models.Identity{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&identity.ID, &identity.Email, &identity.PasswordHash, &identity.Confirmed, &identity.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Identity, error) {
	query := `
		SELECT id, email, password_hash, confirmed, created_at
		FROM identities
		WHERE id = $1
	`

	identity := &models.Identity{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&identity.ID, &identity.Email, &identity.PasswordHash, &identity.Confirmed, &identity.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}
