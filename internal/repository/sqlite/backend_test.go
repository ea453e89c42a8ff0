package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surge/internal/domain/entities"
	"surge/internal/repository"
	"surge/internal/repository/document"
	"surge/internal/repository/seed"
)

func openTemp(t *testing.T, path string) *Backend {
	t.Helper()
	b, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBackend_LoadEmpty(t *testing.T) {
	b := openTemp(t, filepath.Join(t.TempDir(), "surge.db"))
	_, err := b.Load(context.Background())
	assert.ErrorIs(t, err, repository.ErrNoDocument)
}

func TestBackend_Upsert(t *testing.T) {
	ctx := context.Background()
	b := openTemp(t, filepath.Join(t.TempDir(), "surge.db"))

	require.NoError(t, b.Save(ctx, []byte(`{"v":1}`)))
	require.NoError(t, b.Save(ctx, []byte(`{"v":2}`)))

	data, err := b.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(data))
	assert.Equal(t, "sqlite", b.Name())
}

func TestBackend_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "surge.db")

	first, err := Open(ctx, path)
	require.NoError(t, err)
	store, err := document.Open(ctx, first, seed.Document())
	require.NoError(t, err)
	_, err = store.UpdateNotificationsWhere(ctx,
		func(entities.Notification) bool { return true },
		func(n *entities.Notification) { n.Read = true })
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := openTemp(t, path)
	reopened, err := document.Open(ctx, second, seed.Document())
	require.NoError(t, err)

	all, err := reopened.ListNotifications(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)
	for _, n := range all {
		assert.True(t, n.Read, n.ID)
	}
}
