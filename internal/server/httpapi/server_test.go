package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flaviaglenda/turmas/internal/logging"
	"github.com/flaviaglenda/turmas/internal/server/auth"
	"github.com/flaviaglenda/turmas/internal/server/config"
	"github.com/flaviaglenda/turmas/internal/server/repositories/repomanager"
	"github.com/flaviaglenda/turmas/internal/server/services"
)

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	rm := repomanager.NewInMemoryRepositoryManager()
	identities := services.NewIdentityService(nil, rm, cfg)
	professores := services.NewProfessorService(nil, rm)
	turmas := services.NewTurmaService(nil, rm)
	atividades := services.NewAtividadeService(nil, rm, turmas)

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	srv := NewServer(identities, professores, turmas, atividades, []byte(cfg.SecretKey), logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func defaultTestConfig() *config.Config {
	return &config.Config{
		SecretKey:            "test-secret",
		AccessTokenValidity:  time.Hour,
		RefreshTokenValidity: 2 * time.Hour,
	}
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var out map[string]json.RawMessage
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func doJSONList(t *testing.T, url, token string) (*http.Response, []map[string]any) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func rawString(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}

// signUpProfessor registers an identity, creates its professor profile and
// returns the access token.
func signUpProfessor(t *testing.T, ts *httptest.Server, email, nome string) string {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "", map[string]string{
		"email": email, "password": "senha123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := rawString(t, body["access_token"])

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/professores", token, map[string]string{"nome": nome})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return token
}

func signExpiredToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := auth.GenerateToken("identity-1", []byte(secret), -time.Minute)
	require.NoError(t, err)
	return token
}

func TestSignUp_Login_Session(t *testing.T) {
	ts := newTestServer(t, defaultTestConfig())

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "", map[string]string{
		"email": "prof@escola.com", "password": "senha123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, body["access_token"])
	require.NotEmpty(t, body["refresh_token"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]string{
		"email": "prof@escola.com", "password": "senha123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := rawString(t, body["access_token"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/auth/session", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body["identity"]), "prof@escola.com")
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t, defaultTestConfig())

	creds := map[string]string{"email": "prof@escola.com", "password": "senha123"}
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "", creds)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "email_taken", rawString(t, body["error"]))
}

func TestSignUp_Validation(t *testing.T) {
	ts := newTestServer(t, defaultTestConfig())

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "", map[string]string{
		"email": "prof@escola.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "missing_fields", rawString(t, body["error"]))

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "", map[string]string{
		"email": "not-an-email", "password": "senha123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid_request", rawString(t, body["error"]))

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "", map[string]string{
		"email": "prof@escola.com", "password": "12345",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid_request", rawString(t, body["error"]))
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t, defaultTestConfig())

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "", map[string]string{
		"email": "prof@escola.com", "password": "senha123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]string{
		"email": "prof@escola.com", "password": "errada1",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "invalid_credentials", rawString(t, body["error"]))
}

func TestAuth_MissingAndExpiredToken(t *testing.T) {
	cfg := defaultTestConfig()
	ts := newTestServer(t, cfg)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/turmas", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "invalid_token", rawString(t, body["error"]))

	// A token signed with the right secret but already expired.
	expired := signExpiredToken(t, cfg.SecretKey)
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/turmas", expired, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "token_expired", rawString(t, body["error"]))
}

func TestRefresh_RotatesAndRevokes(t *testing.T) {
	ts := newTestServer(t, defaultTestConfig())

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "", map[string]string{
		"email": "prof@escola.com", "password": "senha123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	refresh := rawString(t, body["refresh_token"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rotated := rawString(t, body["refresh_token"])
	require.NotEqual(t, refresh, rotated)

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "refresh_token_expired", rawString(t, body["error"]))
}

func TestLogout_RevokesRefreshSessions(t *testing.T) {
	ts := newTestServer(t, defaultTestConfig())

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "", map[string]string{
		"email": "prof@escola.com", "password": "senha123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := rawString(t, body["access_token"])
	refresh := rawString(t, body["refresh_token"])

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "refresh_token_expired", rawString(t, body["error"]))
}

func TestProfessores_CreateAndMe(t *testing.T) {
	ts := newTestServer(t, defaultTestConfig())

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "", map[string]string{
		"email": "prof@escola.com", "password": "senha123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := rawString(t, body["access_token"])

	// No profile yet.
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/professores/me", token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "professor_not_found", rawString(t, body["error"]))

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/professores", token, map[string]string{"nome": "Ana"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "Ana", rawString(t, body["nome"]))

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/professores/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Ana", rawString(t, body["nome"]))
}

func TestTurmas_CRUDAndScoping(t *testing.T) {
	ts := newTestServer(t, defaultTestConfig())

	tokenA := signUpProfessor(t, ts, "a@escola.com", "Ana")
	tokenB := signUpProfessor(t, ts, "b@escola.com", "Bruno")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/turmas", tokenA, map[string]any{"nome": "Turma A", "numero": 101})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	turmaID := rawString(t, body["id"])

	resp, list := doJSONList(t, ts.URL+"/turmas", tokenA)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)

	// The other professor cannot see or touch it.
	resp, list = doJSONList(t, ts.URL+"/turmas", tokenB)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, list)

	resp, body = doJSON(t, http.MethodPatch, ts.URL+"/turmas/"+turmaID, tokenB, map[string]any{"nome": "X", "numero": 1})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "turma_not_found", rawString(t, body["error"]))

	resp, body = doJSON(t, http.MethodPatch, ts.URL+"/turmas/"+turmaID, tokenA, map[string]any{"nome": "Turma A2", "numero": 102})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Turma A2", rawString(t, body["nome"]))

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/turmas/"+turmaID, tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTurmas_DeleteBlockedByAtividades(t *testing.T) {
	ts := newTestServer(t, defaultTestConfig())
	token := signUpProfessor(t, ts, "a@escola.com", "Ana")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/turmas", token, map[string]any{"nome": "Turma A", "numero": 101})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	turmaID := rawString(t, body["id"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/turmas/"+turmaID+"/atividades", token, map[string]any{
		"numero": 1, "titulo": "Lista 1", "descricao": "Exercícios",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	atividadeID := rawString(t, body["id"])

	resp, body = doJSON(t, http.MethodDelete, ts.URL+"/turmas/"+turmaID, token, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "turma_has_atividades", rawString(t, body["error"]))

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/atividades/"+atividadeID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/turmas/"+turmaID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAtividades_CreateRequiresTituloAndDescricao(t *testing.T) {
	ts := newTestServer(t, defaultTestConfig())
	token := signUpProfessor(t, ts, "a@escola.com", "Ana")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/turmas", token, map[string]any{"nome": "Turma A", "numero": 101})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	turmaID := rawString(t, body["id"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/turmas/"+turmaID+"/atividades", token, map[string]any{
		"numero": 1, "titulo": "Lista 1",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "missing_fields", rawString(t, body["error"]))

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/turmas/"+turmaID+"/atividades", token, map[string]any{
		"numero": 1, "descricao": "Exercícios",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "missing_fields", rawString(t, body["error"]))
}

func TestAtividades_CountAndOrder(t *testing.T) {
	ts := newTestServer(t, defaultTestConfig())
	token := signUpProfessor(t, ts, "a@escola.com", "Ana")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/turmas", token, map[string]any{"nome": "Turma A", "numero": 101})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	turmaID := rawString(t, body["id"])

	for i := 1; i <= 3; i++ {
		resp, _ = doJSON(t, http.MethodPost, ts.URL+"/turmas/"+turmaID+"/atividades", token, map[string]any{
			"numero": i, "titulo": fmt.Sprintf("Lista %d", i), "descricao": fmt.Sprintf("Exercícios %d", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/turmas/"+turmaID+"/atividades/count", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, "3", string(body["count"]))

	resp, list := doJSONList(t, ts.URL+"/turmas/"+turmaID+"/atividades", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 3)
	require.Equal(t, float64(1), list[0]["numero"])
	require.Equal(t, float64(3), list[2]["numero"])
}
