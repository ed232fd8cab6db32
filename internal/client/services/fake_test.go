package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/flaviaglenda/turmas/internal/client/api"
	"github.com/flaviaglenda/turmas/internal/client/session"
)

// fakeBackend implements api.Backend for service unit tests. Call counters
// and Last* fields let tests assert what reached the backend.
type fakeBackend struct {
	SignUpErr          error
	SignInErr          error
	CreateProfessorErr error
	GetProfessorErr    error
	CountRet           int
	CountErr           error
	DeleteTurmaErr     error
	CreateAtividadeErr error

	SignUpCalls          int
	SignInCalls          int
	SignOutCalls         int
	CreateProfessorCalls int
	DeleteTurmaCalls     int

	LastSignUpEmail        string
	LastSignInEmail        string
	LastProfessorNome      string
	LastAtividadeNumero    int
	LastAtividadeTitulo    string
	LastCountTurmaID       string
	LastDeletedTurmaID     string
	LastDeletedAtividadeID string
}

func (f *fakeBackend) SignUp(ctx context.Context, email, password string) (*api.Session, error) {
	f.SignUpCalls++
	f.LastSignUpEmail = email
	if f.SignUpErr != nil {
		return nil, f.SignUpErr
	}
	return &api.Session{
		Identity: api.Identity{ID: "i-1", Email: email},
		Tokens:   api.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
	}, nil
}

func (f *fakeBackend) SignIn(ctx context.Context, email, password string) (*api.Session, error) {
	f.SignInCalls++
	f.LastSignInEmail = email
	if f.SignInErr != nil {
		return nil, f.SignInErr
	}
	return &api.Session{
		Identity: api.Identity{ID: "i-1", Email: email},
		Tokens:   api.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
	}, nil
}

func (f *fakeBackend) SignOut(ctx context.Context) error {
	f.SignOutCalls++
	return nil
}

func (f *fakeBackend) CurrentIdentity(ctx context.Context) (*api.Identity, error) {
	return &api.Identity{ID: "i-1"}, nil
}

func (f *fakeBackend) Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error) {
	return &api.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"}, nil
}

func (f *fakeBackend) CreateProfessor(ctx context.Context, nome string) (*api.Professor, error) {
	f.CreateProfessorCalls++
	f.LastProfessorNome = nome
	if f.CreateProfessorErr != nil {
		return nil, f.CreateProfessorErr
	}
	return &api.Professor{ID: "i-1", Nome: nome}, nil
}

func (f *fakeBackend) GetProfessor(ctx context.Context) (*api.Professor, error) {
	if f.GetProfessorErr != nil {
		return nil, f.GetProfessorErr
	}
	return &api.Professor{ID: "i-1", Nome: "Ana"}, nil
}

func (f *fakeBackend) ListTurmas(ctx context.Context) ([]api.Turma, error) {
	return []api.Turma{{ID: "t-1", Nome: "Turma A", Numero: 1}}, nil
}

func (f *fakeBackend) CreateTurma(ctx context.Context, nome string, numero int) (*api.Turma, error) {
	return &api.Turma{ID: "t-new", Nome: nome, Numero: numero}, nil
}

func (f *fakeBackend) UpdateTurma(ctx context.Context, id, nome string, numero int) (*api.Turma, error) {
	return &api.Turma{ID: id, Nome: nome, Numero: numero}, nil
}

func (f *fakeBackend) DeleteTurma(ctx context.Context, id string) error {
	f.DeleteTurmaCalls++
	f.LastDeletedTurmaID = id
	return f.DeleteTurmaErr
}

func (f *fakeBackend) ListAtividades(ctx context.Context, turmaID string) ([]api.Atividade, error) {
	return []api.Atividade{{ID: "a-1", TurmaID: turmaID, Numero: 1, Titulo: "Prova"}}, nil
}

func (f *fakeBackend) CountAtividades(ctx context.Context, turmaID string) (int, error) {
	f.LastCountTurmaID = turmaID
	return f.CountRet, f.CountErr
}

func (f *fakeBackend) CreateAtividade(ctx context.Context, turmaID string, numero int, titulo, descricao string) (*api.Atividade, error) {
	f.LastAtividadeNumero = numero
	f.LastAtividadeTitulo = titulo
	if f.CreateAtividadeErr != nil {
		return nil, f.CreateAtividadeErr
	}
	return &api.Atividade{ID: "a-new", TurmaID: turmaID, Numero: numero, Titulo: titulo, Descricao: descricao}, nil
}

func (f *fakeBackend) UpdateAtividade(ctx context.Context, id, titulo, descricao string) (*api.Atividade, error) {
	return &api.Atividade{ID: id, Titulo: titulo, Descricao: descricao}, nil
}

func (f *fakeBackend) DeleteAtividade(ctx context.Context, id string) error {
	f.LastDeletedAtividadeID = id
	return nil
}

var _ api.Backend = (*fakeBackend)(nil)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "session.json"))
}
