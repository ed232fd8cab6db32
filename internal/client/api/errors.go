package api

import (
	"errors"
	"fmt"

	"github.com/flaviaglenda/turmas/internal/common"
)

// ErrUnavailable signals a transport-level failure: the server could not be
// reached at all.
var ErrUnavailable = errors.New("server unavailable")

// errorFromCode translates a server error code into the shared sentinels.
// Unrecognized codes become plain errors carrying the raw code, so the UI
// can fall back to showing it.
func errorFromCode(code string) error {
	switch code {
	case "email_taken":
		return common.ErrEmailTaken
	case "invalid_credentials":
		return common.ErrUnauthorized
	case "email_not_confirmed":
		return common.ErrEmailNotConfirmed
	case "token_expired":
		return common.ErrTokenExpired
	case "invalid_token":
		return common.ErrInvalidToken
	case "refresh_token_expired":
		return common.ErrRefreshTokenExpired
	case "professor_not_found":
		return common.ErrProfessorNotFound
	case "professor_exists":
		return common.ErrProfessorExists
	case "turma_not_found", "atividade_not_found":
		return common.ErrNotFound
	case "turma_has_atividades":
		return common.ErrTurmaHasAtividades
	default:
		return fmt.Errorf("server error: %s", code)
	}
}
