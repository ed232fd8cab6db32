package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flaviaglenda/turmas/internal/common"
	"github.com/flaviaglenda/turmas/internal/server/config"
	"github.com/flaviaglenda/turmas/internal/server/repositories/repomanager"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:            "test-secret",
		AccessTokenValidity:  time.Hour,
		RefreshTokenValidity: 2 * time.Hour,
	}
}

func newIdentityService(cfg *config.Config) (*IdentityService, *repomanager.InMemoryRepositoryManager) {
	rm := repomanager.NewInMemoryRepositoryManager()
	return NewIdentityService(nil, rm, cfg), rm
}

func TestSignUp_ReturnsIdentityAndTokens(t *testing.T) {
	svc, _ := newIdentityService(testConfig())

	identity, pair, err := svc.SignUp(context.Background(), "prof@escola.com", "senha123")
	require.NoError(t, err)
	require.Equal(t, "prof@escola.com", identity.Email)
	require.True(t, identity.Confirmed)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _ := newIdentityService(testConfig())

	_, _, err := svc.SignUp(context.Background(), "prof@escola.com", "senha123")
	require.NoError(t, err)

	_, _, err = svc.SignUp(context.Background(), "prof@escola.com", "outrasenha")
	require.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestSignIn_Success(t *testing.T) {
	svc, _ := newIdentityService(testConfig())

	created, _, err := svc.SignUp(context.Background(), "prof@escola.com", "senha123")
	require.NoError(t, err)

	identity, pair, err := svc.SignIn(context.Background(), "prof@escola.com", "senha123")
	require.NoError(t, err)
	require.Equal(t, created.ID, identity.ID)
	require.NotEmpty(t, pair.AccessToken)
}

func TestSignUp_StoresEmailTrimmedAndLowerCased(t *testing.T) {
	svc, _ := newIdentityService(testConfig())

	identity, _, err := svc.SignUp(context.Background(), "  Prof@Escola.COM ", "senha123")
	require.NoError(t, err)
	require.Equal(t, "prof@escola.com", identity.Email)

	// a differently cased spelling is still the same address
	_, _, err = svc.SignUp(context.Background(), "PROF@escola.com", "outrasenha")
	require.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestSignIn_EmailCaseInsensitive(t *testing.T) {
	svc, _ := newIdentityService(testConfig())

	created, _, err := svc.SignUp(context.Background(), "Prof@Escola.com", "senha123")
	require.NoError(t, err)

	identity, _, err := svc.SignIn(context.Background(), "prof@escola.com", "senha123")
	require.NoError(t, err)
	require.Equal(t, created.ID, identity.ID)

	identity, _, err = svc.SignIn(context.Background(), " PROF@ESCOLA.COM ", "senha123")
	require.NoError(t, err)
	require.Equal(t, created.ID, identity.ID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, _ := newIdentityService(testConfig())

	_, _, err := svc.SignUp(context.Background(), "prof@escola.com", "senha123")
	require.NoError(t, err)

	_, _, err = svc.SignIn(context.Background(), "prof@escola.com", "errada")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	svc, _ := newIdentityService(testConfig())

	_, _, err := svc.SignIn(context.Background(), "ghost@escola.com", "senha123")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSignIn_UnconfirmedEmail(t *testing.T) {
	cfg := testConfig()
	cfg.RequireEmailConfirmation = true
	svc, rm := newIdentityService(cfg)

	created, _, err := svc.SignUp(context.Background(), "prof@escola.com", "senha123")
	require.NoError(t, err)
	require.False(t, created.Confirmed)

	_, _, err = svc.SignIn(context.Background(), "prof@escola.com", "senha123")
	require.ErrorIs(t, err, common.ErrEmailNotConfirmed)

	rm.IdentitiesInMemory().Confirm(created.ID)

	_, _, err = svc.SignIn(context.Background(), "prof@escola.com", "senha123")
	require.NoError(t, err)
}

func TestRefresh_RotatesSession(t *testing.T) {
	svc, _ := newIdentityService(testConfig())

	_, pair, err := svc.SignUp(context.Background(), "prof@escola.com", "senha123")
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The old token was revoked by the rotation.
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc, _ := newIdentityService(testConfig())

	_, err := svc.Refresh(context.Background(), "deadbeef")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestSignOut_RevokesAllSessions(t *testing.T) {
	svc, _ := newIdentityService(testConfig())

	identity, first, err := svc.SignUp(context.Background(), "prof@escola.com", "senha123")
	require.NoError(t, err)
	_, second, err := svc.SignIn(context.Background(), "prof@escola.com", "senha123")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), identity.ID))

	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	require.ErrorIs(t, err, common.ErrRefreshTokenExpired)
	_, err = svc.Refresh(context.Background(), second.RefreshToken)
	require.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}
