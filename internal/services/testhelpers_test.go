package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"surge/internal/config"
	"surge/internal/repository/document"
	"surge/internal/repository/memory"
	"surge/internal/repository/seed"
)

var fixedNow = time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)

// setupStore opens a seeded document store over an in-memory backend. The
// backend is returned so tests can inject write failures.
func setupStore(t *testing.T) (*document.Store, *memory.Backend) {
	t.Helper()
	backend := memory.NewBackend()
	store, err := document.Open(context.Background(), backend, seed.Document())
	require.NoError(t, err)
	return store, backend
}

func openStoreWith(t *testing.T, raw string) *document.Store {
	t.Helper()
	store, err := document.Open(context.Background(), memory.NewBackendWith([]byte(raw)), nil)
	require.NoError(t, err)
	return store
}

func testConfig() *config.Config {
	return config.NewDefaultConfig()
}
