// Package cli is the interactive front-end of the TicketDesk client. It is
// deliberately thin: it reads intents, dispatches them to the session store
// and the entity caches, and renders whatever state comes back.
package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/dmitrijs2005/ticketdesk/internal/client/api"
	"github.com/dmitrijs2005/ticketdesk/internal/client/config"
	"github.com/dmitrijs2005/ticketdesk/internal/client/repositories"
	"github.com/dmitrijs2005/ticketdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ticketdesk/internal/client/session"
	"github.com/dmitrijs2005/ticketdesk/internal/client/store"
	"github.com/dmitrijs2005/ticketdesk/internal/logging"
)

// App wires the gateway, the session store and the entity caches together
// and drives them from a REPL.
type App struct {
	config   *config.Config
	log      logging.Logger
	apiC     api.API
	session  *session.Store
	tickets  *store.Tickets
	comments *store.Comments
	users    *store.Users
	repos    *repositories.Repositories
	reader   *bufio.Reader
}

// NewApp builds the full client. The gateway gets the session's token
// accessor and silent-refresh callback after both exist, mirroring their
// mutual dependency: the session refreshes through the gateway, the gateway
// authenticates through the session.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	apiClient, err := api.New(cfg.ServerEndpointURL, cfg.RequestTimeout, log)
	if err != nil {
		return nil, err
	}

	sess := session.NewStore(apiClient, log)
	apiClient.SetTokenFunc(sess.Token)
	apiClient.SetRefreshFunc(sess.SilentRefresh)

	repos, err := repositories.InitDatabase(ctx, cfg.SnapshotDSN)
	if err != nil {
		return nil, err
	}

	return &App{
		config:   cfg,
		log:      log,
		apiC:     apiClient,
		session:  sess,
		tickets:  store.NewTickets(apiClient, repos.Tickets, log),
		comments: store.NewComments(apiClient, log),
		users:    store.NewUsers(apiClient, log),
		repos:    repos,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run performs the startup silent refresh, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	if a.session.SilentRefresh(ctx) {
		a.log.Info(ctx, "session restored", "identity", a.session.Identity())
	}
	a.Root(ctx)
}

// Close releases the local database.
func (a *App) Close() error {
	return a.repos.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

// markSynced records a successful full fetch in the local metadata store.
func (a *App) markSynced(ctx context.Context) {
	if err := a.repos.Metadata.Set(ctx, metadata.KeyLastSync, time.Now().UTC().Format(time.RFC3339)); err != nil {
		a.log.Warn(ctx, "failed to record sync time", "error", err)
	}
}
