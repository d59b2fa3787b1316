// Package directory lists registered accounts for the admin console
package directory

//go:generate mockgen -destination=../mocks/mock_directory.go -package=mocks github.com/existflow/plotline/internal/directory Lister

import (
	"context"
	"sync"

	"github.com/existflow/plotline/internal/catalog"
	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
)

// Lister fetches accounts from the admin API
type Lister interface {
	ListUsers(ctx context.Context, token string) ([]model.Account, error)
}

// Directory holds the accounts returned by the last successful fetch
type Directory struct {
	lister Lister
	tokens catalog.TokenSource

	mu    sync.RWMutex
	users []model.Account
}

func New(lister Lister, tokens catalog.TokenSource) *Directory {
	return &Directory{lister: lister, tokens: tokens, users: []model.Account{}}
}

// FetchAllUsers replaces the held accounts with the backend's list. A failure
// is logged and leaves the previous list in place.
func (d *Directory) FetchAllUsers(ctx context.Context) model.Result[[]model.Account] {
	users, err := d.lister.ListUsers(ctx, d.tokens.Token(ctx))
	if err != nil {
		logger.Error("Failed to fetch users", logger.F("error", err))
		return model.Fail[[]model.Account](err)
	}

	d.mu.Lock()
	d.users = users
	d.mu.Unlock()

	logger.Debug("Fetched users", logger.F("count", len(users)))
	return model.Ok(users)
}

// Users returns the held accounts
func (d *Directory) Users() []model.Account {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Account, len(d.users))
	copy(out, d.users)
	return out
}

// Find returns the held account with the given id
func (d *Directory) Find(id string) (model.Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.Account{}, false
}
