package cli

import (
	"context"
	"fmt"

	"github.com/existflow/plotline/internal/admin"
	"github.com/existflow/plotline/internal/api"
	"github.com/existflow/plotline/internal/catalog"
	"github.com/existflow/plotline/internal/directory"
	"github.com/existflow/plotline/internal/inquiry"
	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/session"
	"github.com/existflow/plotline/internal/storage"
)

// app wires the stores for one command invocation
type app struct {
	store     *storage.SQLite
	client    *api.Client
	session   *session.Store
	catalog   *catalog.Store
	directory *directory.Directory
	inquiry   *inquiry.Service
}

func openApp(ctx context.Context) (*app, error) {
	store, err := storage.Open(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to open storage", logger.F("path", cfg.StoragePath), logger.F("error", err))
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	return newApp(ctx, store, api.NewClient(cfg.BaseURL, cfg.Timeout)), nil
}

func newApp(ctx context.Context, store *storage.SQLite, client *api.Client) *app {
	sess := session.New(ctx, client, store)
	return &app{
		store:     store,
		client:    client,
		session:   sess,
		catalog:   catalog.New(client, sess),
		directory: directory.New(client, sess),
		inquiry:   inquiry.New(client),
	}
}

// console builds the admin console. Deletions are confirmed on stdin unless
// force is set or confirmation is disabled in the config.
func (a *app) console(force bool) *admin.Console {
	var confirm admin.Confirmer = admin.AlwaysConfirm{}
	if cfg.ConfirmDelete && !force {
		confirm = newPrompter()
	}
	return admin.NewConsole(a.session, a.catalog, a.directory, a.client, confirm, printNotifier{})
}

// adminMode reports whether the persisted session passes the same guard as
// the admin commands: an admin user and a token.
func (a *app) adminMode(ctx context.Context) bool {
	c := admin.NewConsole(a.session, a.catalog, a.directory, a.client, admin.AlwaysConfirm{}, printNotifier{})
	return c.Guard(ctx).Success()
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.Warn("Failed to close storage", logger.F("error", err))
	}
}
