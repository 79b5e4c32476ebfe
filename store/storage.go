// Package store holds the per-visitor state containers: the cart, the mock
// auth session and the notification inbox, plus the storage they persist to.
package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by storage when a key has never been written or was deleted
var ErrNotFound = errors.New("store: key not found")

// Backend is durable key/value storage partitioned by visitor id.
// It plays the role of a browser's local storage, one partition per browser.
type Backend interface {
	Get(ctx context.Context, visitorID, key string) ([]byte, error)
	Set(ctx context.Context, visitorID, key string, value []byte) error
	Delete(ctx context.Context, visitorID, key string) error
}

// Storage is a Backend bound to one visitor
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Scope binds backend to a single visitor
func Scope(backend Backend, visitorID string) Storage {
	return scoped{backend: backend, visitorID: visitorID}
}

type scoped struct {
	backend   Backend
	visitorID string
}

func (s scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.backend.Get(ctx, s.visitorID, key)
}

func (s scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.backend.Set(ctx, s.visitorID, key, value)
}

func (s scoped) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, s.visitorID, key)
}

// MemoryBackend keeps everything in process memory
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]map[string][]byte)}
}

func (m *MemoryBackend) Get(_ context.Context, visitorID, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[visitorID][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Set(_ context.Context, visitorID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	part, ok := m.data[visitorID]
	if !ok {
		part = make(map[string][]byte)
		m.data[visitorID] = part
	}
	part[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, visitorID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[visitorID], key)
	return nil
}
