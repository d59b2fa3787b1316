package server

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/existflow/plotline/internal/model"
	"github.com/google/uuid"
)

var (
	errEmailTaken = errors.New("User already exists")
	errNoPlot     = errors.New("Plot not found")
)

type account struct {
	model.Account
	passwordHash []byte
}

type upload struct {
	contentType string
	data        []byte
}

// store keeps all backend state in memory
type store struct {
	mu        sync.RWMutex
	accounts  map[string]*account // by id
	emails    map[string]string   // lowercased email -> id
	joined    []string            // account ids in signup order
	plots     map[string]model.Plot
	order     []string
	inquiries []model.Inquiry
	uploads   map[string]upload
}

func newStore() *store {
	return &store{
		accounts: make(map[string]*account),
		emails:   make(map[string]string),
		plots:    make(map[string]model.Plot),
		uploads:  make(map[string]upload),
	}
}

func (s *store) addAccount(name, email, role string, hash []byte) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.emails[key]; ok {
		return model.Account{}, errEmailTaken
	}

	a := &account{
		Account: model.Account{
			ID:        uuid.NewString(),
			Name:      name,
			Email:     email,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		},
		passwordHash: hash,
	}
	s.accounts[a.ID] = a
	s.emails[key] = a.ID
	s.joined = append(s.joined, a.ID)
	return a.Account, nil
}

func (s *store) accountByEmail(email string) (account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return account{}, false
	}
	return *s.accounts[id], true
}

// listAccounts returns accounts oldest first
func (s *store) listAccounts() []model.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Account, 0, len(s.joined))
	for _, id := range s.joined {
		out = append(out, s.accounts[id].Account)
	}
	return out
}

func (s *store) addPlot(p model.Plot) model.Plot {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.plots[p.ID] = p
	s.order = append(s.order, p.ID)
	return p
}

func (s *store) plot(id string) (model.Plot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plots[id]
	return p, ok
}

func (s *store) listPlots() []model.Plot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Plot, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.plots[id])
	}
	return out
}

// updatePlot replaces the editable fields; images are kept
func (s *store) updatePlot(id string, patch model.PlotPatch) (model.Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plots[id]
	if !ok {
		return model.Plot{}, errNoPlot
	}
	p.Name = patch.Name
	p.Address = patch.Address
	p.SquareFeet = patch.SquareFeet
	p.Location = patch.Location
	p.Price = patch.Price
	p.Facing = patch.Facing
	p.Boundary = patch.Boundary
	p.Description = patch.Description
	p.Amenities = patch.Amenities
	s.plots[id] = p
	return p, nil
}

func (s *store) deletePlot(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plots[id]; !ok {
		return errNoPlot
	}
	delete(s.plots, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *store) addInquiry(in model.Inquiry) {
	s.mu.Lock()
	s.inquiries = append(s.inquiries, in)
	s.mu.Unlock()
}

func (s *store) listInquiries() []model.Inquiry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Inquiry{}, s.inquiries...)
}

func (s *store) putUpload(name string, u upload) {
	s.mu.Lock()
	s.uploads[name] = u
	s.mu.Unlock()
}

func (s *store) getUpload(name string) (upload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.uploads[name]
	return u, ok
}
