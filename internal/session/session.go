// Package session holds who is logged in. The identity lives in memory and in
// durable storage under the "user" and "token" keys; admin and regular logins
// share those keys, so only one session exists per storage.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/existflow/plotline/internal/api"
	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
	"github.com/existflow/plotline/internal/storage"
)

// Authenticator is the part of the backend the session store talks to
type Authenticator interface {
	Register(ctx context.Context, reg model.Registration) (model.User, error)
	Login(ctx context.Context, creds model.Credentials) (api.AuthResponse, error)
	LoginAdmin(ctx context.Context, creds model.Credentials) (api.AuthResponse, error)
}

// Store is the single source of truth for the current session
type Store struct {
	auth    Authenticator
	storage storage.Store

	mu      sync.RWMutex
	current *model.Session
}

// New creates a session store and restores any persisted session
func New(ctx context.Context, auth Authenticator, store storage.Store) *Store {
	s := &Store{auth: auth, storage: store}
	s.Rehydrate(ctx)
	return s
}

// Rehydrate replaces the in-memory session with the persisted one, if any.
// A malformed persisted user counts as no session.
func (s *Store) Rehydrate(ctx context.Context) {
	user, ok := s.Persisted(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !ok {
		s.current = nil
		return
	}

	token, _, err := s.storage.Get(ctx, storage.KeyToken)
	if err != nil {
		logger.Warn("Failed to read persisted token", logger.F("error", err))
	}
	s.current = &model.Session{User: user, Token: token}
	logger.Debug("Session restored", logger.F("user", user.ID), logger.F("role", user.Role))
}

// Persisted reads the user object from durable storage
func (s *Store) Persisted(ctx context.Context) (model.User, bool) {
	raw, ok, err := s.storage.Get(ctx, storage.KeyUser)
	if err != nil {
		logger.Warn("Failed to read persisted session", logger.F("error", err))
		return model.User{}, false
	}
	if !ok || raw == "" {
		return model.User{}, false
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Warn("Ignoring malformed persisted session", logger.F("error", err))
		return model.User{}, false
	}
	return user, true
}

// Register creates an account. On success the returned user becomes the
// in-memory session; nothing is persisted because registration issues no token.
func (s *Store) Register(ctx context.Context, reg model.Registration) model.Result[model.User] {
	reg = reg.Normalize()
	if err := model.Validate(reg); err != nil {
		return model.Fail[model.User](err)
	}

	user, err := s.auth.Register(ctx, reg)
	if err != nil {
		logger.Error("Registration failed", logger.F("email", reg.Email), logger.F("error", err))
		return model.Fail[model.User](err)
	}

	s.mu.Lock()
	s.current = &model.Session{User: user}
	s.mu.Unlock()

	logger.Info("Registered", logger.F("user", user.ID))
	return model.Ok(user)
}

// Login authenticates a regular user and persists the session
func (s *Store) Login(ctx context.Context, creds model.Credentials) model.Result[model.User] {
	return s.login(ctx, creds, s.auth.Login)
}

// LoginAdmin authenticates against the admin endpoint, reusing the same storage keys
func (s *Store) LoginAdmin(ctx context.Context, creds model.Credentials) model.Result[model.User] {
	return s.login(ctx, creds, s.auth.LoginAdmin)
}

type loginFunc func(context.Context, model.Credentials) (api.AuthResponse, error)

func (s *Store) login(ctx context.Context, creds model.Credentials, call loginFunc) model.Result[model.User] {
	if err := model.Validate(creds); err != nil {
		return model.Fail[model.User](err)
	}

	resp, err := call(ctx, creds)
	if err != nil {
		logger.Error("Login failed", logger.F("email", creds.Email), logger.F("error", err))
		return model.Fail[model.User](err)
	}

	if err := s.persist(ctx, resp.User, resp.Token); err != nil {
		logger.Error("Failed to persist session", logger.F("error", err))
		return model.Fail[model.User](err)
	}

	s.mu.Lock()
	s.current = &model.Session{User: resp.User, Token: resp.Token}
	s.mu.Unlock()

	logger.Info("Logged in", logger.F("user", resp.User.ID), logger.F("role", resp.User.Role))
	return model.Ok(resp.User)
}

// persist writes user and token together. If the write fails, the previous
// pair is put back so storage never mixes two sessions.
func (s *Store) persist(ctx context.Context, user model.User, token string) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	prev := make(map[string]string, 2)
	for _, k := range []string{storage.KeyUser, storage.KeyToken} {
		if v, ok, err := s.storage.Get(ctx, k); err == nil && ok {
			prev[k] = v
		}
	}

	err = s.storage.SetMany(ctx, map[string]string{
		storage.KeyUser:  string(data),
		storage.KeyToken: token,
	})
	if err != nil {
		s.restore(ctx, prev)
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func (s *Store) restore(ctx context.Context, prev map[string]string) {
	if err := s.storage.Remove(ctx, storage.KeyUser, storage.KeyToken); err != nil {
		logger.Error("Failed to roll back session", logger.F("error", err))
		return
	}
	if len(prev) == 0 {
		return
	}
	if err := s.storage.SetMany(ctx, prev); err != nil {
		logger.Error("Failed to restore previous session", logger.F("error", err))
	}
}

// Logout clears the in-memory session and both storage keys. Calling it
// without a session is a no-op that still succeeds.
func (s *Store) Logout(ctx context.Context) model.Result[struct{}] {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.storage.Remove(ctx, storage.KeyUser, storage.KeyToken); err != nil {
		logger.Error("Failed to clear session", logger.F("error", err))
		return model.Fail[struct{}](err)
	}

	logger.Info("Logged out")
	return model.Ok(struct{}{})
}

// Current returns a copy of the in-memory session
func (s *Store) Current() (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.current.Active() {
		return model.Session{}, false
	}
	return *s.current, true
}

// Token returns the bearer token from durable storage, falling back to the in-memory session
func (s *Store) Token(ctx context.Context) string {
	token, ok, err := s.storage.Get(ctx, storage.KeyToken)
	if err != nil {
		logger.Warn("Failed to read persisted token", logger.F("error", err))
	}
	if ok && token != "" {
		return token
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.BearerToken()
}

// IsAuthenticated returns true if a bearer token is available
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// IsAdmin returns true if the persisted user has the admin role
func (s *Store) IsAdmin(ctx context.Context) bool {
	user, ok := s.Persisted(ctx)
	return ok && user.IsAdmin()
}
