// Package catalog holds the property collection and its filtered view, and
// mediates the list, detail, update and delete calls against the backend.
package catalog

//go:generate mockgen -destination=../mocks/mock_catalog.go -package=mocks github.com/existflow/plotline/internal/catalog Backend,TokenSource

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
)

// ErrSuperseded is returned by a fetch whose response arrived after a newer fetch was issued
var ErrSuperseded = errors.New("superseded by a newer fetch")

// Backend is the plots part of the REST API
type Backend interface {
	ListPlots(ctx context.Context) ([]model.Plot, error)
	GetPlot(ctx context.Context, token, id string) (model.Plot, error)
	UpdatePlot(ctx context.Context, token, id string, patch model.PlotPatch) error
	DeletePlot(ctx context.Context, token, id string) error
}

// TokenSource yields the current bearer token, or "" when logged out
type TokenSource interface {
	Token(ctx context.Context) string
}

// Store is safe for concurrent use. The filtered view is always a subset of
// the last applied full set.
type Store struct {
	backend Backend
	tokens  TokenSource

	mu       sync.RWMutex
	all      []model.Plot
	filtered []model.Plot
	criteria model.Criteria
	loading  bool
	err      error
	seq      uint64
}

// New creates an empty catalog
func New(backend Backend, tokens TokenSource) *Store {
	return &Store{
		backend:  backend,
		tokens:   tokens,
		all:      []model.Plot{},
		filtered: []model.Plot{},
	}
}

// FetchProperties replaces the full set and resets the filtered view. On
// failure both sets are emptied and the error is kept. A response that
// arrives after a newer call was issued is discarded.
func (s *Store) FetchProperties(ctx context.Context) model.Result[[]model.Plot] {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading = true
	s.mu.Unlock()

	plots, err := s.backend.ListPlots(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		logger.Debug("Discarding stale plot list", logger.F("seq", seq), logger.F("latest", s.seq))
		return model.Fail[[]model.Plot](ErrSuperseded)
	}
	s.loading = false

	if err != nil {
		logger.Error("Failed to fetch plots", logger.F("error", err))
		s.err = err
		s.all = []model.Plot{}
		s.filtered = []model.Plot{}
		return model.Fail[[]model.Plot](err)
	}

	s.err = nil
	s.all = clone(plots)
	s.filtered = s.all
	s.criteria = model.Criteria{}
	logger.Debug("Fetched plots", logger.F("count", len(plots)))
	return model.Ok(clone(plots))
}

// FetchPropertyDetails retrieves the full record of one plot. A token is required.
func (s *Store) FetchPropertyDetails(ctx context.Context, id string) model.Result[model.Plot] {
	plot, err := s.backend.GetPlot(ctx, s.tokens.Token(ctx), id)
	if err != nil {
		logger.Error("Failed to fetch plot", logger.F("id", id), logger.F("error", err))
		return model.Fail[model.Plot](err)
	}
	return model.Ok(plot)
}

// UpdateProperty sends an already normalized patch. Local state is left alone.
func (s *Store) UpdateProperty(ctx context.Context, id string, patch model.PlotPatch) model.Result[struct{}] {
	if err := s.backend.UpdatePlot(ctx, s.tokens.Token(ctx), id, patch); err != nil {
		logger.Error("Failed to update plot", logger.F("id", id), logger.F("error", err))
		return model.Fail[struct{}](err)
	}
	logger.Info("Updated plot", logger.F("id", id))
	return model.Ok(struct{}{})
}

// DeleteProperty removes a plot on the backend. The local list keeps the
// entry until the next FetchProperties.
func (s *Store) DeleteProperty(ctx context.Context, id string) model.Result[struct{}] {
	if err := s.backend.DeletePlot(ctx, s.tokens.Token(ctx), id); err != nil {
		logger.Error("Failed to delete plot", logger.F("id", id), logger.F("error", err))
		return model.Fail[struct{}](err)
	}
	logger.Info("Deleted plot", logger.F("id", id))
	return model.Ok(struct{}{})
}

// FilterProperties recomputes the filtered view over the held full set
func (s *Store) FilterProperties(c model.Criteria) []model.Plot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.IsEmpty() {
		s.filtered = s.all
	} else {
		filtered := make([]model.Plot, 0, len(s.all))
		for _, p := range s.all {
			if c.Matches(p) {
				filtered = append(filtered, p)
			}
		}
		s.filtered = filtered
	}
	s.criteria = c
	return clone(s.filtered)
}

// ResetFilters restores the filtered view to the full set
func (s *Store) ResetFilters() []model.Plot {
	return s.FilterProperties(model.Criteria{})
}

// All returns the full set
func (s *Store) All() []model.Plot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.all)
}

// Filtered returns the current filtered view
func (s *Store) Filtered() []model.Plot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.filtered)
}

func (s *Store) Criteria() model.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error of the last applied fetch, if it failed
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// clone copies plots deep enough that callers cannot reach the held sets
func clone(plots []model.Plot) []model.Plot {
	out := make([]model.Plot, len(plots))
	for i, p := range plots {
		p.Amenities = slices.Clone(p.Amenities)
		p.Images = slices.Clone(p.Images)
		out[i] = p
	}
	return out
}
