// Package admin composes the session, catalog and directory into the admin
// console: a guard, confirmations before destructive actions, and the
// add/edit/delete/view flows for properties and users.
package admin

//go:generate mockgen -destination=../mocks/mock_admin.go -package=mocks github.com/existflow/plotline/internal/admin Sessions,Catalog,Directory,Creator,Confirmer,Notifier

import (
	"context"
	"fmt"

	"github.com/existflow/plotline/internal/api"
	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
)

// Prompts and notices shown by the console
const (
	PromptDeleteProperty = "Are you sure you want to delete this property?"
	PromptDeleteUser     = "Are you sure you want to delete this user?"

	NoticePropertyDeleted = "Property deleted successfully!"
	NoticePropertyUpdated = "Property updated successfully!"
	NoticePropertyAdded   = "Property added successfully!"
)

type Sessions interface {
	Persisted(ctx context.Context) (model.User, bool)
	Token(ctx context.Context) string
	Logout(ctx context.Context) model.Result[struct{}]
}

type Catalog interface {
	FetchProperties(ctx context.Context) model.Result[[]model.Plot]
	UpdateProperty(ctx context.Context, id string, patch model.PlotPatch) model.Result[struct{}]
	DeleteProperty(ctx context.Context, id string) model.Result[struct{}]
	All() []model.Plot
}

type Directory interface {
	FetchAllUsers(ctx context.Context) model.Result[[]model.Account]
	Find(id string) (model.Account, bool)
}

// Creator submits a new plot directly, bypassing the catalog
type Creator interface {
	CreatePlot(ctx context.Context, token string, patch model.PlotPatch, images []api.Upload) (model.Plot, error)
}

// Confirmer asks the operator a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Notifier shows a transient acknowledgement
type Notifier interface {
	Notify(msg string)
}

// AlwaysConfirm answers yes to every prompt
type AlwaysConfirm struct{}

func (AlwaysConfirm) Confirm(context.Context, string) bool { return true }

// Console is the admin dashboard without its rendering
type Console struct {
	sessions  Sessions
	catalog   Catalog
	directory Directory
	creator   Creator
	confirm   Confirmer
	notify    Notifier
}

func NewConsole(sessions Sessions, catalog Catalog, directory Directory, creator Creator, confirm Confirmer, notify Notifier) *Console {
	return &Console{
		sessions:  sessions,
		catalog:   catalog,
		directory: directory,
		creator:   creator,
		confirm:   confirm,
		notify:    notify,
	}
}

// Guard requires a persisted admin user and a token. It reads durable
// storage every time so it reflects logins from other processes.
func (c *Console) Guard(ctx context.Context) model.Result[model.User] {
	user, ok := c.sessions.Persisted(ctx)
	if !ok || !user.IsAdmin() {
		logger.Warn("Admin guard rejected session", logger.F("role", user.Role))
		return model.Fail[model.User](model.ErrAdminRequired)
	}
	if c.sessions.Token(ctx) == "" {
		logger.Warn("Admin guard found no token", logger.F("user", user.ID))
		return model.Fail[model.User](model.ErrAdminRequired)
	}
	return model.Ok(user)
}

// Open runs the guard and loads both tabs once. Load failures are logged;
// only a guard failure fails the result.
func (c *Console) Open(ctx context.Context) model.Result[model.User] {
	res := c.Guard(ctx)
	if !res.Success() {
		return res
	}
	c.catalog.FetchProperties(ctx)
	c.directory.FetchAllUsers(ctx)
	return res
}

// DeleteProperty confirms, deletes and notifies. The visible list is not
// updated; callers refresh when they want to.
func (c *Console) DeleteProperty(ctx context.Context, id string) model.Result[struct{}] {
	if !c.confirm.Confirm(ctx, PromptDeleteProperty) {
		return model.Fail[struct{}](model.ErrCancelled)
	}

	res := c.catalog.DeleteProperty(ctx, id)
	if !res.Success() {
		c.notify.Notify("Failed to delete property: " + res.Message())
		return res
	}
	c.notify.Notify(NoticePropertyDeleted)
	return res
}

// DeleteUser confirms and then reports that no backend endpoint exists
func (c *Console) DeleteUser(ctx context.Context, id string) model.Result[struct{}] {
	if !c.confirm.Confirm(ctx, PromptDeleteUser) {
		return model.Fail[struct{}](model.ErrCancelled)
	}
	logger.Warn("User deletion requested but not supported", logger.F("user", id))
	return model.Fail[struct{}](fmt.Errorf("delete user %s: %w", id, model.ErrNotImplemented))
}

// AddProperty normalizes the form and submits it with its images as one
// multipart request. The catalog is not refreshed.
func (c *Console) AddProperty(ctx context.Context, form model.PlotForm, images []api.Upload) model.Result[model.Plot] {
	token := c.sessions.Token(ctx)
	if token == "" {
		return c.addFailed(model.ErrNoToken)
	}

	patch, err := form.Normalize()
	if err != nil {
		return c.addFailed(err)
	}

	plot, err := c.creator.CreatePlot(ctx, token, patch, images)
	if err != nil {
		logger.Error("Failed to add plot", logger.F("name", patch.Name), logger.F("error", err))
		return c.addFailed(err)
	}

	logger.Info("Added plot", logger.F("id", plot.ID), logger.F("images", len(images)))
	c.notify.Notify(NoticePropertyAdded)
	return model.Ok(plot)
}

func (c *Console) addFailed(err error) model.Result[model.Plot] {
	c.notify.Notify("Failed to add property: " + err.Error())
	return model.Fail[model.Plot](err)
}

// EditProperty normalizes the form and sends it through the catalog
func (c *Console) EditProperty(ctx context.Context, id string, form model.PlotForm) model.Result[struct{}] {
	if c.sessions.Token(ctx) == "" {
		c.notify.Notify("Failed to update property: " + model.ErrNoToken.Error())
		return model.Fail[struct{}](model.ErrNoToken)
	}

	patch, err := form.Normalize()
	if err != nil {
		c.notify.Notify("Failed to update property: " + err.Error())
		return model.Fail[struct{}](err)
	}

	res := c.catalog.UpdateProperty(ctx, id, patch)
	if !res.Success() {
		c.notify.Notify("Failed to update property: " + res.Message())
		return res
	}
	c.notify.Notify(NoticePropertyUpdated)
	return res
}

// ViewProperty returns the held record; it makes no network call
func (c *Console) ViewProperty(id string) model.Result[model.Plot] {
	for _, p := range c.catalog.All() {
		if p.ID == id {
			return model.Ok(p)
		}
	}
	return model.Fail[model.Plot](fmt.Errorf("property %s: %w", id, model.ErrNotFound))
}

// ViewUser returns the held account; it makes no network call
func (c *Console) ViewUser(id string) model.Result[model.Account] {
	if u, ok := c.directory.Find(id); ok {
		return model.Ok(u)
	}
	return model.Fail[model.Account](fmt.Errorf("user %s: %w", id, model.ErrNotFound))
}

// Logout ends the admin session
func (c *Console) Logout(ctx context.Context) model.Result[struct{}] {
	return c.sessions.Logout(ctx)
}
