package services

import (
	"context"

	"surge/internal/domain/entities"
	"surge/internal/repository"
)

// MarkReadResult is the MarkNotificationAsRead payload.
type MarkReadResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

// ClearResult is the ClearAllNotifications payload. Count is how many
// notifications were marked read; none are deleted.
type ClearResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

type NotificationService struct {
	notifications repository.NotificationRepository
	preferences   repository.PreferencesRepository
	rnd           Randomizer
}

func NewNotificationService(notifications repository.NotificationRepository, preferences repository.PreferencesRepository, rnd Randomizer) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		preferences:   preferences,
		rnd:           rnd,
	}
}

func (s *NotificationService) ListNotifications(ctx context.Context) ([]entities.Notification, error) {
	return s.notifications.ListNotifications(ctx)
}

// MarkAsRead sets read on the notification with id. An empty or unknown id
// is a successful no-op.
func (s *NotificationService) MarkAsRead(ctx context.Context, id string) (*MarkReadResult, error) {
	if id == "" {
		return &MarkReadResult{Success: true}, nil
	}
	_, err := s.notifications.UpdateNotificationsWhere(ctx,
		func(n entities.Notification) bool { return n.ID == id },
		func(n *entities.Notification) { n.Read = true },
	)
	if err != nil {
		return nil, err
	}
	return &MarkReadResult{Success: true, ID: id}, nil
}

// ClearAll marks every notification read. Records are kept.
func (s *NotificationService) ClearAll(ctx context.Context) (*ClearResult, error) {
	n, err := s.notifications.UpdateNotificationsWhere(ctx,
		func(entities.Notification) bool { return true },
		func(n *entities.Notification) { n.Read = true },
	)
	if err != nil {
		return nil, err
	}
	return &ClearResult{Success: true, Count: n}, nil
}

func (s *NotificationService) GetPreferences(ctx context.Context) (entities.UserPreferences, error) {
	return s.preferences.GetUserPreferences(ctx)
}

// UpdatePreferences shallow-merges patch into the stored notification
// preferences and returns the merged result.
func (s *NotificationService) UpdatePreferences(ctx context.Context, patch map[string]interface{}) (entities.UserPreferences, error) {
	return s.preferences.MergeNotificationPreferences(ctx, patch)
}

// Poll returns the newest unread notification. When everything has been
// read it returns a uniformly random one instead, read or not. Ties on
// timestamp go to the earlier entry in stored order. Nil means there are no
// notifications at all.
func (s *NotificationService) Poll(ctx context.Context) (*entities.Notification, error) {
	all, err := s.notifications.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}

	var latest *entities.Notification
	for i := range all {
		n := &all[i]
		if n.Read {
			continue
		}
		if latest == nil || n.Timestamp.After(latest.Timestamp) {
			latest = n
		}
	}
	if latest != nil {
		return latest, nil
	}

	pick := all[s.rnd.IntN(len(all))]
	return &pick, nil
}
