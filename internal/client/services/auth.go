// Package services contains the client-side application services. They
// validate input, call the backend, and keep the session store consistent;
// the terminal UI stays free of business rules.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/flaviaglenda/turmas/internal/client/api"
	"github.com/flaviaglenda/turmas/internal/client/session"
)

type signUpInput struct {
	Nome  string `validate:"required"`
	Email string `validate:"required,contains=@,contains=."`
	Senha string `validate:"required,min=6"`
}

// signInInput is looser than signUpInput on purpose: a mistyped password or
// an oddly shaped registered email must fall through to the server and come
// back as invalid credentials, not as an input message.
type signInInput struct {
	Email string `validate:"required,contains=@"`
	Senha string `validate:"required"`
}

// normalizeEmail trims and lower-cases an address so the same account is
// reachable no matter how the email was typed.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthService handles registration and login. Both operations leave the
// session store in a definite state: login ends fully authenticated (tokens
// plus professor profile) or fully cleared, and registration always ends
// cleared; the store never holds tokens without a profile.
type AuthService struct {
	backend api.Backend
	store   *session.Store
}

func NewAuthService(backend api.Backend, store *session.Store) *AuthService {
	return &AuthService{backend: backend, store: store}
}

// SignUp creates the account and the professor profile in sequence, then
// signs out again: registration always ends unauthenticated and the user
// logs in explicitly. When the profile step fails the freshly created
// session is revoked too, so a half registered account cannot be left
// signed in either.
func (a *AuthService) SignUp(ctx context.Context, nome, email, senha string) error {
	email = normalizeEmail(email)
	if err := validateStruct(signUpInput{Nome: nome, Email: email, Senha: senha}); err != nil {
		return err
	}

	sess, err := a.backend.SignUp(ctx, email, senha)
	if err != nil {
		return err
	}
	a.store.SetTokens(sess.Tokens.AccessToken, sess.Tokens.RefreshToken)

	if _, err := a.backend.CreateProfessor(ctx, nome); err != nil {
		_ = a.backend.SignOut(ctx)
		a.store.Clear()
		return fmt.Errorf("creating professor profile: %w", err)
	}

	_ = a.backend.SignOut(ctx)
	a.store.Clear()
	return nil
}

// SignIn authenticates and loads the professor profile. An identity without
// a profile signs out again and surfaces the missing profile to the caller.
func (a *AuthService) SignIn(ctx context.Context, email, senha string) error {
	email = normalizeEmail(email)
	if err := validateStruct(signInInput{Email: email, Senha: senha}); err != nil {
		return err
	}

	sess, err := a.backend.SignIn(ctx, email, senha)
	if err != nil {
		return err
	}
	a.store.SetTokens(sess.Tokens.AccessToken, sess.Tokens.RefreshToken)

	professor, err := a.backend.GetProfessor(ctx)
	if err != nil {
		_ = a.backend.SignOut(ctx)
		a.store.Clear()
		return err
	}

	a.store.Set(sess, professor)
	return nil
}

// SignOut ends the session on the server and locally.
func (a *AuthService) SignOut(ctx context.Context) error {
	return a.store.SignOut(ctx, a.backend)
}
