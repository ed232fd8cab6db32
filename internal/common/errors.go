// Package common defines shared constants and sentinel errors used across
// the client and server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Sign-up / profile errors.
	ErrEmailTaken        = errors.New("email already registered")
	ErrProfessorNotFound = errors.New("professor not found")
	ErrProfessorExists   = errors.New("professor already registered")

	// Sign-in errors.
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// Integrity guard: a turma that still owns atividades cannot be deleted.
	ErrTurmaHasAtividades = errors.New("turma has atividades")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
