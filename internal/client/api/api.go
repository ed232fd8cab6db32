// Package api defines the contract the client has with the remote backend
// and its HTTP implementation. Everything the rest of the client knows about
// the server goes through the Backend interface.
package api

import (
	"context"
	"time"
)

// Identity is the backend-issued authenticated-user handle.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Professor is the teacher profile linked to an identity.
type Professor struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	CreatedAt time.Time `json:"created_at"`
}

// Turma is a class owned by a professor.
type Turma struct {
	ID          string    `json:"id"`
	Nome        string    `json:"nome"`
	Numero      int       `json:"numero"`
	ProfessorID string    `json:"professor_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Atividade is an activity inside a turma.
type Atividade struct {
	ID        string    `json:"id"`
	TurmaID   string    `json:"turma_id"`
	Numero    int       `json:"numero"`
	Titulo    string    `json:"titulo"`
	Descricao string    `json:"descricao"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPair is the access/refresh token pair of a live session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Session is what the backend hands out on sign-up and sign-in.
type Session struct {
	Identity Identity
	Tokens   TokenPair
}

// TokenSource supplies the tokens for authenticated calls and receives them
// back after a refresh rotation. The session store implements it.
type TokenSource interface {
	Tokens() (access string, refresh string)
	SetTokens(access string, refresh string)
}

// Backend is the remote contract. Implementations return the sentinel errors
// of internal/common where the server signals a known condition.
type Backend interface {
	SignUp(ctx context.Context, email string, password string) (*Session, error)
	SignIn(ctx context.Context, email string, password string) (*Session, error)
	SignOut(ctx context.Context) error
	CurrentIdentity(ctx context.Context) (*Identity, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	CreateProfessor(ctx context.Context, nome string) (*Professor, error)
	GetProfessor(ctx context.Context) (*Professor, error)

	ListTurmas(ctx context.Context) ([]Turma, error)
	CreateTurma(ctx context.Context, nome string, numero int) (*Turma, error)
	UpdateTurma(ctx context.Context, id string, nome string, numero int) (*Turma, error)
	DeleteTurma(ctx context.Context, id string) error

	ListAtividades(ctx context.Context, turmaID string) ([]Atividade, error)
	CountAtividades(ctx context.Context, turmaID string) (int, error)
	CreateAtividade(ctx context.Context, turmaID string, numero int, titulo string, descricao string) (*Atividade, error)
	UpdateAtividade(ctx context.Context, id string, titulo string, descricao string) (*Atividade, error)
	DeleteAtividade(ctx context.Context, id string) error
}
