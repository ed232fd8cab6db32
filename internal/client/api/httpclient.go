package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/flaviaglenda/turmas/internal/common"
)

// HTTPClient implements Backend over the server's REST API. Authenticated
// calls carry the access token from the TokenSource; when the server answers
// token_expired the client refreshes once, stores the rotated pair back into
// the TokenSource, and retries the original request. This mirrors a client
// interceptor: callers never see an expired access token.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewHTTPClient constructs a client for the server at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

type apiError struct {
	Code string `json:"error"`
}

// do performs one JSON request. When authed is set, the access token is
// attached and an expired-token response triggers a single refresh+retry.
func (c *HTTPClient) do(ctx context.Context, method string, path string, body any, out any, authed bool) error {
	err := c.doOnce(ctx, method, path, body, out, authed)
	if authed && errors.Is(err, common.ErrTokenExpired) {
		_, refresh := c.tokens.Tokens()
		if refresh == "" {
			return common.ErrRefreshTokenExpired
		}
		pair, refreshErr := c.Refresh(ctx, refresh)
		if refreshErr != nil {
			return common.ErrRefreshTokenExpired
		}
		c.tokens.SetTokens(pair.AccessToken, pair.RefreshToken)
		return c.doOnce(ctx, method, path, body, out, authed)
	}
	return err
}

func (c *HTTPClient) doOnce(ctx context.Context, method string, path string, body any, out any, authed bool) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		access, _ := c.tokens.Tokens()
		req.Header.Set(common.AuthorizationHeader, "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil || apiErr.Code == "" {
			return fmt.Errorf("server error: status %d", resp.StatusCode)
		}
		return errorFromCode(apiErr.Code)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

type sessionResponse struct {
	Identity     Identity `json:"identity"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

func (r *sessionResponse) toSession() *Session {
	return &Session{
		Identity: r.Identity,
		Tokens:   TokenPair{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken},
	}
}

func (c *HTTPClient) SignUp(ctx context.Context, email string, password string) (*Session, error) {
	var resp sessionResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", map[string]string{"email": email, "password": password}, &resp, false)
	if err != nil {
		return nil, err
	}
	return resp.toSession(), nil
}

func (c *HTTPClient) SignIn(ctx context.Context, email string, password string) (*Session, error) {
	var resp sessionResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &resp, false)
	if err != nil {
		return nil, err
	}
	return resp.toSession(), nil
}

func (c *HTTPClient) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, true)
}

func (c *HTTPClient) CurrentIdentity(ctx context.Context) (*Identity, error) {
	var resp struct {
		Identity Identity `json:"identity"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/session", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Identity, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	err := c.doOnce(ctx, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": refreshToken}, &resp, false)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

func (c *HTTPClient) CreateProfessor(ctx context.Context, nome string) (*Professor, error) {
	var out Professor
	if err := c.do(ctx, http.MethodPost, "/professores", map[string]string{"nome": nome}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetProfessor(ctx context.Context) (*Professor, error) {
	var out Professor
	if err := c.do(ctx, http.MethodGet, "/professores/me", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListTurmas(ctx context.Context) ([]Turma, error) {
	var out []Turma
	if err := c.do(ctx, http.MethodGet, "/turmas", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateTurma(ctx context.Context, nome string, numero int) (*Turma, error) {
	var out Turma
	if err := c.do(ctx, http.MethodPost, "/turmas", map[string]any{"nome": nome, "numero": numero}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateTurma(ctx context.Context, id string, nome string, numero int) (*Turma, error) {
	var out Turma
	if err := c.do(ctx, http.MethodPatch, "/turmas/"+id, map[string]any{"nome": nome, "numero": numero}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteTurma(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/turmas/"+id, nil, nil, true)
}

func (c *HTTPClient) ListAtividades(ctx context.Context, turmaID string) ([]Atividade, error) {
	var out []Atividade
	if err := c.do(ctx, http.MethodGet, "/turmas/"+turmaID+"/atividades", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CountAtividades(ctx context.Context, turmaID string) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/turmas/"+turmaID+"/atividades/count", nil, &out, true); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *HTTPClient) CreateAtividade(ctx context.Context, turmaID string, numero int, titulo string, descricao string) (*Atividade, error) {
	var out Atividade
	body := map[string]any{"numero": numero, "titulo": titulo, "descricao": descricao}
	if err := c.do(ctx, http.MethodPost, "/turmas/"+turmaID+"/atividades", body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateAtividade(ctx context.Context, id string, titulo string, descricao string) (*Atividade, error) {
	var out Atividade
	body := map[string]any{"titulo": titulo, "descricao": descricao}
	if err := c.do(ctx, http.MethodPatch, "/atividades/"+id, body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteAtividade(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/atividades/"+id, nil, nil, true)
}
