// Package httpapi exposes the REST surface of the turmas service: auth,
// professor profiles, turmas and atividades, all JSON over chi.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/flaviaglenda/turmas/internal/common"
	"github.com/flaviaglenda/turmas/internal/logging"
	"github.com/flaviaglenda/turmas/internal/server/auth"
	"github.com/flaviaglenda/turmas/internal/server/models"
	"github.com/flaviaglenda/turmas/internal/server/services"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	identities  *services.IdentityService
	professores *services.ProfessorService
	turmas      *services.TurmaService
	atividades  *services.AtividadeService
	jwtSecret   []byte
	logger      logging.Logger
	validate    *validator.Validate
}

// NewServer constructs the HTTP layer on top of the services.
func NewServer(
	identities *services.IdentityService,
	professores *services.ProfessorService,
	turmas *services.TurmaService,
	atividades *services.AtividadeService,
	jwtSecret []byte,
	logger logging.Logger,
) *Server {
	return &Server{
		identities:  identities,
		professores: professores,
		turmas:      turmas,
		atividades:  atividades,
		jwtSecret:   jwtSecret,
		logger:      logger,
		validate:    validator.New(),
	}
}

// Router builds the route table. Everything except sign-up, sign-in and
// refresh requires a bearer access token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/signup", s.handleSignUp)
	r.Post("/auth/login", s.handleSignIn)
	r.Post("/auth/refresh", s.handleRefresh)
	r.With(s.authMiddleware).Post("/auth/logout", s.handleSignOut)
	r.With(s.authMiddleware).Get("/auth/session", s.handleSession)

	r.With(s.authMiddleware).Post("/professores", s.handleCreateProfessor)
	r.With(s.authMiddleware).Get("/professores/me", s.handleGetProfessor)

	r.With(s.authMiddleware).Get("/turmas", s.handleListTurmas)
	r.With(s.authMiddleware).Post("/turmas", s.handleCreateTurma)
	r.With(s.authMiddleware).Patch("/turmas/{turmaID}", s.handleUpdateTurma)
	r.With(s.authMiddleware).Delete("/turmas/{turmaID}", s.handleDeleteTurma)

	r.With(s.authMiddleware).Get("/turmas/{turmaID}/atividades", s.handleListAtividades)
	r.With(s.authMiddleware).Get("/turmas/{turmaID}/atividades/count", s.handleCountAtividades)
	r.With(s.authMiddleware).Post("/turmas/{turmaID}/atividades", s.handleCreateAtividade)
	r.With(s.authMiddleware).Patch("/atividades/{atividadeID}", s.handleUpdateAtividade)
	r.With(s.authMiddleware).Delete("/atividades/{atividadeID}", s.handleDeleteAtividade)

	return r
}

// Auth

type identityIDKey struct{}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get(common.AuthorizationHeader))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		identityID, err := auth.IdentityIDFromToken(token, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "token_expired")
				return
			}
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), identityIDKey{}, identityID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(identityIDKey{}).(string)
	return id
}

// Wire DTOs

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type professorRequest struct {
	Nome string `json:"nome" validate:"required"`
}

type turmaRequest struct {
	Nome   string `json:"nome" validate:"required"`
	Numero int    `json:"numero" validate:"required"`
}

type atividadeCreateRequest struct {
	Numero    int    `json:"numero" validate:"required,min=1"`
	Titulo    string `json:"titulo" validate:"required"`
	Descricao string `json:"descricao" validate:"required"`
}

type atividadeUpdateRequest struct {
	Titulo    string `json:"titulo" validate:"required"`
	Descricao string `json:"descricao" validate:"required"`
}

type identityJSON struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type professorJSON struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	CreatedAt time.Time `json:"created_at"`
}

type turmaJSON struct {
	ID          string    `json:"id"`
	Nome        string    `json:"nome"`
	Numero      int       `json:"numero"`
	ProfessorID string    `json:"professor_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type atividadeJSON struct {
	ID        string    `json:"id"`
	TurmaID   string    `json:"turma_id"`
	Numero    int       `json:"numero"`
	Titulo    string    `json:"titulo"`
	Descricao string    `json:"descricao"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Identity     identityJSON `json:"identity"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func toIdentityJSON(i *models.Identity) identityJSON {
	return identityJSON{ID: i.ID, Email: i.Email, CreatedAt: i.CreatedAt}
}

func toProfessorJSON(p *models.Professor) professorJSON {
	return professorJSON{ID: p.ID, Nome: p.Nome, CreatedAt: p.CreatedAt}
}

func toTurmaJSON(t *models.Turma) turmaJSON {
	return turmaJSON{ID: t.ID, Nome: t.Nome, Numero: t.Numero, ProfessorID: t.ProfessorID, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func toAtividadeJSON(a *models.Atividade) atividadeJSON {
	return atividadeJSON{ID: a.ID, TurmaID: a.TurmaID, Numero: a.Numero, Titulo: a.Titulo, Descricao: a.Descricao, CreatedAt: a.CreatedAt}
}

// Handlers: auth

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	identity, pair, err := s.identities.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		Identity:     toIdentityJSON(identity),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	identity, pair, err := s.identities.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Identity:     toIdentityJSON(identity),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := s.identities.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.identities.SignOut(r.Context(), identityIDFromContext(r.Context())); err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identities.GetIdentity(r.Context(), identityIDFromContext(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]identityJSON{"identity": toIdentityJSON(identity)})
}

// Handlers: professores

func (s *Server) handleCreateProfessor(w http.ResponseWriter, r *http.Request) {
	var req professorRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	professor, err := s.professores.Create(r.Context(), identityIDFromContext(r.Context()), req.Nome)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, toProfessorJSON(professor))
}

func (s *Server) handleGetProfessor(w http.ResponseWriter, r *http.Request) {
	professor, err := s.professores.GetByIdentity(r.Context(), identityIDFromContext(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toProfessorJSON(professor))
}

// Handlers: turmas

func (s *Server) handleListTurmas(w http.ResponseWriter, r *http.Request) {
	list, err := s.turmas.List(r.Context(), identityIDFromContext(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err, "turma_not_found")
		return
	}

	out := make([]turmaJSON, 0, len(list))
	for _, t := range list {
		out = append(out, toTurmaJSON(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTurma(w http.ResponseWriter, r *http.Request) {
	var req turmaRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	turma, err := s.turmas.Create(r.Context(), identityIDFromContext(r.Context()), req.Nome, req.Numero)
	if err != nil {
		s.writeServiceError(w, r, err, "turma_not_found")
		return
	}
	writeJSON(w, http.StatusCreated, toTurmaJSON(turma))
}

func (s *Server) handleUpdateTurma(w http.ResponseWriter, r *http.Request) {
	var req turmaRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	turma, err := s.turmas.Update(r.Context(), identityIDFromContext(r.Context()), chi.URLParam(r, "turmaID"), req.Nome, req.Numero)
	if err != nil {
		s.writeServiceError(w, r, err, "turma_not_found")
		return
	}
	writeJSON(w, http.StatusOK, toTurmaJSON(turma))
}

func (s *Server) handleDeleteTurma(w http.ResponseWriter, r *http.Request) {
	err := s.turmas.Delete(r.Context(), identityIDFromContext(r.Context()), chi.URLParam(r, "turmaID"))
	if err != nil {
		s.writeServiceError(w, r, err, "turma_not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Handlers: atividades

func (s *Server) handleListAtividades(w http.ResponseWriter, r *http.Request) {
	list, err := s.atividades.List(r.Context(), identityIDFromContext(r.Context()), chi.URLParam(r, "turmaID"))
	if err != nil {
		s.writeServiceError(w, r, err, "turma_not_found")
		return
	}

	out := make([]atividadeJSON, 0, len(list))
	for _, a := range list {
		out = append(out, toAtividadeJSON(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCountAtividades(w http.ResponseWriter, r *http.Request) {
	count, err := s.atividades.Count(r.Context(), identityIDFromContext(r.Context()), chi.URLParam(r, "turmaID"))
	if err != nil {
		s.writeServiceError(w, r, err, "turma_not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *Server) handleCreateAtividade(w http.ResponseWriter, r *http.Request) {
	var req atividadeCreateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	atividade, err := s.atividades.Create(r.Context(), identityIDFromContext(r.Context()), chi.URLParam(r, "turmaID"), req.Numero, req.Titulo, req.Descricao)
	if err != nil {
		s.writeServiceError(w, r, err, "turma_not_found")
		return
	}
	writeJSON(w, http.StatusCreated, toAtividadeJSON(atividade))
}

func (s *Server) handleUpdateAtividade(w http.ResponseWriter, r *http.Request) {
	var req atividadeUpdateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	atividade, err := s.atividades.Update(r.Context(), identityIDFromContext(r.Context()), chi.URLParam(r, "atividadeID"), req.Titulo, req.Descricao)
	if err != nil {
		s.writeServiceError(w, r, err, "atividade_not_found")
		return
	}
	writeJSON(w, http.StatusOK, toAtividadeJSON(atividade))
}

func (s *Server) handleDeleteAtividade(w http.ResponseWriter, r *http.Request) {
	err := s.atividades.Delete(r.Context(), identityIDFromContext(r.Context()), chi.URLParam(r, "atividadeID"))
	if err != nil {
		s.writeServiceError(w, r, err, "atividade_not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Helpers

// decodeAndValidate parses the JSON body into out and runs struct
// validation. It writes the error response itself and reports whether the
// handler should continue.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := decodeJSON(r, out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return false
	}
	if err := s.validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Tag() == "required" {
					writeError(w, http.StatusBadRequest, "missing_fields")
					return false
				}
			}
		}
		writeError(w, http.StatusBadRequest, "invalid_request")
		return false
	}
	return true
}

// writeServiceError maps service sentinels to HTTP status and machine code.
// notFoundCode names the entity for common.ErrNotFound; it depends on the
// route.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundCode string) {
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken")
	case errors.Is(err, common.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, common.ErrEmailNotConfirmed):
		writeError(w, http.StatusUnauthorized, "email_not_confirmed")
	case errors.Is(err, common.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "token_expired")
	case errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid_token")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		writeError(w, http.StatusUnauthorized, "refresh_token_expired")
	case errors.Is(err, common.ErrProfessorNotFound):
		writeError(w, http.StatusNotFound, "professor_not_found")
	case errors.Is(err, common.ErrProfessorExists):
		writeError(w, http.StatusConflict, "professor_exists")
	case errors.Is(err, common.ErrTurmaHasAtividades):
		writeError(w, http.StatusConflict, "turma_has_atividades")
	case errors.Is(err, common.ErrNotFound) && notFoundCode != "":
		writeError(w, http.StatusNotFound, notFoundCode)
	default:
		s.logger.Error(r.Context(), "request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
