// Package storage is the durable key-value store that survives restarts.
// It plays the role browser local storage plays for the web client: the
// session user and the bearer token live under fixed keys.
package storage

import (
	"context"
	"sync"
)

// Fixed keys shared by every client instance using the same store
const (
	KeyUser  = "user"
	KeyToken = "token"
)

// Store is a durable string key-value store
type Store interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes every entry or none of them
	SetMany(ctx context.Context, entries map[string]string) error
	// Remove deletes keys; missing keys are not an error
	Remove(ctx context.Context, keys ...string) error
}

// Memory is an in-process Store, used by tests and ephemeral sessions
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) SetMany(_ context.Context, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range entries {
		m.data[k] = v
	}
	return nil
}

func (m *Memory) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}
