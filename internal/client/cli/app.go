// Package cli implements the interactive terminal client. Screens are gated
// by the session store: until Restore finishes the UI shows nothing but a
// loading notice, and the command set switches with the authentication state.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/flaviaglenda/turmas/internal/client/api"
	"github.com/flaviaglenda/turmas/internal/client/config"
	"github.com/flaviaglenda/turmas/internal/client/services"
	"github.com/flaviaglenda/turmas/internal/client/session"
)

type App struct {
	config     *config.Config
	store      *session.Store
	backend    api.Backend
	auth       *services.AuthService
	turmas     *services.TurmaService
	atividades *services.AtividadeService
	reader     *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	store := session.NewStore(c.StateFile)
	backend := api.NewHTTPClient(c.ServerURL, c.RequestTimeout, store)

	return &App{
		config:     c,
		store:      store,
		backend:    backend,
		auth:       services.NewAuthService(backend, store),
		turmas:     services.NewTurmaService(backend),
		atividades: services.NewAtividadeService(backend),
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.store.Restore(ctx, a.backend)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.store.Status() == session.StatusAuthenticated
}
