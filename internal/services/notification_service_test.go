package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surge/internal/repository"
)

func setupNotificationService(t *testing.T) *NotificationService {
	t.Helper()
	store, _ := setupStore(t)
	return NewNotificationService(store, store, NewSeededRandomizer(7))
}

func TestPoll_ReturnsLatestUnread(t *testing.T) {
	svc := setupNotificationService(t)
	ctx := context.Background()

	n, err := svc.Poll(ctx)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "notif-2", n.ID)

	_, err = svc.MarkAsRead(ctx, "notif-2")
	require.NoError(t, err)

	n, err = svc.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "notif-1", n.ID)
}

func TestPoll_AllReadPicksAnyNotification(t *testing.T) {
	svc := setupNotificationService(t)
	ctx := context.Background()

	_, err := svc.ClearAll(ctx)
	require.NoError(t, err)

	ids := map[string]bool{"notif-1": true, "notif-2": true, "notif-3": true, "notif-4": true}
	for i := 0; i < 10; i++ {
		n, err := svc.Poll(ctx)
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.True(t, ids[n.ID], "unexpected id %s", n.ID)
	}
}

func TestPoll_EmptyReturnsNil(t *testing.T) {
	store := openStoreWith(t, `{"notifications":[]}`)
	svc := NewNotificationService(store, store, NewSeededRandomizer(1))

	n, err := svc.Poll(context.Background())
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestPoll_TieGoesToEarlierEntry(t *testing.T) {
	store := openStoreWith(t, `{"notifications":[
		{"id":"a","type":"x","message":"m","timestamp":"2024-03-15T08:00:00Z","read":false},
		{"id":"b","type":"x","message":"m","timestamp":"2024-03-15T08:00:00Z","read":false}
	]}`)
	svc := NewNotificationService(store, store, NewSeededRandomizer(1))

	n, err := svc.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", n.ID)
}

func TestMarkAsRead(t *testing.T) {
	svc := setupNotificationService(t)
	ctx := context.Background()

	res, err := svc.MarkAsRead(ctx, "notif-1")
	require.NoError(t, err)
	assert.Equal(t, &MarkReadResult{Success: true, ID: "notif-1"}, res)

	all, _ := svc.ListNotifications(ctx)
	for _, n := range all {
		if n.ID == "notif-1" && !n.Read {
			t.Error("notif-1 should be read")
		}
		if n.ID == "notif-2" && n.Read {
			t.Error("notif-2 should still be unread")
		}
	}
}

func TestMarkAsRead_UnknownIDIsNoop(t *testing.T) {
	svc := setupNotificationService(t)
	ctx := context.Background()

	before, _ := svc.ListNotifications(ctx)
	res, err := svc.MarkAsRead(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.True(t, res.Success)

	after, _ := svc.ListNotifications(ctx)
	assert.Equal(t, before, after)

	res, err = svc.MarkAsRead(ctx, "")
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestClearAll_MarksReadWithoutDeleting(t *testing.T) {
	svc := setupNotificationService(t)
	ctx := context.Background()

	res, err := svc.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Count)

	all, _ := svc.ListNotifications(ctx)
	require.Len(t, all, 4)
	for _, n := range all {
		assert.True(t, n.Read, n.ID)
	}
}

func TestClearAll_WriteFailure(t *testing.T) {
	store, backend := setupStore(t)
	svc := NewNotificationService(store, store, NewSeededRandomizer(1))
	backend.FailSaves(errors.New("read-only filesystem"))

	_, err := svc.ClearAll(context.Background())
	require.ErrorIs(t, err, repository.ErrWriteFailed)

	all, _ := svc.ListNotifications(context.Background())
	unread := 0
	for _, n := range all {
		if !n.Read {
			unread++
		}
	}
	assert.Equal(t, 2, unread)
}

func TestUpdatePreferences_ShallowMerge(t *testing.T) {
	svc := setupNotificationService(t)
	ctx := context.Background()

	merged, err := svc.UpdatePreferences(ctx, map[string]interface{}{
		"surgeAlerts":    false,
		"surgeThreshold": 2.0,
	})
	require.NoError(t, err)

	p := merged.NotificationPreferences
	assert.Equal(t, false, p["surgeAlerts"])
	assert.Equal(t, 2.0, p["surgeThreshold"])
	assert.Equal(t, true, p["priceLockReminders"], "untouched keys survive")

	stored, err := svc.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, merged, stored)
	assert.Equal(t, "San Francisco", stored.DefaultCity)
}
