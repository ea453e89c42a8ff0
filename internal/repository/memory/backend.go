// Package memory provides an in-process Backend for tests and the "memory"
// store driver. State is lost when the process exits.
package memory

import (
	"context"
	"sync"

	"surge/internal/repository"
)

// Backend keeps the last saved document in memory.
//
// Go Learning Note — sync.RWMutex:
// Load takes a read lock so concurrent readers never block each other; Save
// takes the exclusive lock. The document store above already serializes
// writes, but the backend stays safe on its own for direct use in tests.
type Backend struct {
	mu      sync.RWMutex
	data    []byte
	failErr error
	saves   int
}

func NewBackend() *Backend {
	return &Backend{}
}

// NewBackendWith starts with data already stored.
func NewBackendWith(data []byte) *Backend {
	return &Backend{data: append([]byte(nil), data...)}
}

func (b *Backend) Name() string { return "memory" }

func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.data == nil {
		return nil, repository.ErrNoDocument
	}
	return append([]byte(nil), b.data...), nil
}

func (b *Backend) Save(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failErr != nil {
		return b.failErr
	}
	b.data = append([]byte(nil), data...)
	b.saves++
	return nil
}

func (b *Backend) Close() error { return nil }

// FailSaves makes every following Save return err. Pass nil to recover.
func (b *Backend) FailSaves(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failErr = err
}

// Saves returns the number of successful saves.
func (b *Backend) Saves() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.saves
}
