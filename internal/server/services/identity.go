// Package services contains the server-side business logic. This file
// implements IdentityService: sign-up, sign-in, refresh token rotation and
// sign-out.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/flaviaglenda/turmas/internal/common"
	"github.com/flaviaglenda/turmas/internal/cryptox"
	"github.com/flaviaglenda/turmas/internal/dbx"
	"github.com/flaviaglenda/turmas/internal/server/auth"
	"github.com/flaviaglenda/turmas/internal/server/config"
	"github.com/flaviaglenda/turmas/internal/server/models"
	"github.com/flaviaglenda/turmas/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// IdentityService provides authentication operations:
// - SignUp: create identities and mint tokens
// - SignIn: verify credentials and mint tokens
// - Refresh: rotate refresh sessions and mint new access tokens
// - SignOut: revoke every refresh session of an identity
type IdentityService struct {
	db                       *sql.DB
	repomanager              repomanager.RepositoryManager
	jwtSecret                []byte
	accessTokenValidity      time.Duration
	refreshTokenValidity     time.Duration
	requireEmailConfirmation bool
}

// NewIdentityService constructs an IdentityService using repositories and
// server config.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:                       db,
		repomanager:              m,
		jwtSecret:                []byte(cfg.SecretKey),
		accessTokenValidity:      cfg.AccessTokenValidity,
		refreshTokenValidity:     cfg.RefreshTokenValidity,
		requireEmailConfirmation: cfg.RequireEmailConfirmation,
	}
}

// SignUp creates a new identity and returns it with a fresh token pair.
// The email is stored trimmed and lower-cased, so the same address always
// maps to the same identity regardless of how it was typed. When email
// confirmation is not required, the identity starts confirmed.
func (s *IdentityService) SignUp(ctx context.Context, email string, password string) (*models.Identity, *TokenPair, error) {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, common.ErrInternal
	}

	repo := s.repomanager.Identities(s.db)
	identity, err := repo.Create(ctx, email, hash, !s.requireEmailConfirmation)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("error creating identity: %w", err)
	}

	pair, err := s.generateTokenPair(ctx, identity.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return identity, pair, nil
}

// SignIn verifies the credentials and, on success, returns the identity with
// a new token pair. Unknown emails and wrong passwords both yield
// common.ErrUnauthorized so callers cannot probe for registered emails.
func (s *IdentityService) SignIn(ctx context.Context, email string, password string) (*models.Identity, *TokenPair, error) {
	repo := s.repomanager.Identities(s.db)
	identity, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrUnauthorized
		}
		return nil, nil, common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword(identity.PasswordHash, []byte(password)) != nil {
		return nil, nil, common.ErrUnauthorized
	}

	if s.requireEmailConfirmation && !identity.Confirmed {
		return nil, nil, common.ErrEmailNotConfirmed
	}

	pair, err := s.generateTokenPair(ctx, identity.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return identity, pair, nil
}

// Refresh validates a refresh token, rotates its session transactionally,
// and returns a fresh TokenPair. Expired or revoked sessions yield
// common.ErrRefreshTokenExpired; unknown tokens yield common.ErrInvalidToken.
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshSessions(s.db)

	session, err := repo.FindByTokenHash(ctx, cryptox.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh session: %w", err)
	}
	if session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshSessions(tx)
		if err := repoTx.Revoke(ctx, session.ID); err != nil {
			return fmt.Errorf("error revoking refresh session: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, session.IdentityID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// SignOut revokes every live refresh session of the identity.
func (s *IdentityService) SignOut(ctx context.Context, identityID string) error {
	repo := s.repomanager.RefreshSessions(s.db)
	if err := repo.RevokeAllForIdentity(ctx, identityID); err != nil {
		return fmt.Errorf("error revoking refresh sessions: %w", err)
	}
	return nil
}

// GetIdentity returns the identity behind an access token's subject.
func (s *IdentityService) GetIdentity(ctx context.Context, identityID string) (*models.Identity, error) {
	repo := s.repomanager.Identities(s.db)
	identity, err := repo.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	return identity, nil
}

// --- helpers below ---

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// withTx runs fn inside a transaction when a real database handle is
// present. The in-memory repositories have no transactions; fn runs directly.
func (s *IdentityService) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}

func (s *IdentityService) generateTokenPair(ctx context.Context, identityID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(identityID, s.jwtSecret, s.accessTokenValidity)
	if err != nil {
		return nil, common.ErrInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrInternal
	}
	repo := s.repomanager.RefreshSessions(tx)
	if _, err := repo.Create(ctx, identityID, cryptox.HashToken(refresh), s.refreshTokenValidity); err != nil {
		return nil, common.ErrInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
