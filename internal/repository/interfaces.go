package repository

import (
	"context"
	"errors"

	"surge/internal/domain/entities"
)

var (
	// ErrNoDocument is returned by a Backend that has never been written.
	ErrNoDocument = errors.New("no state document")
	// ErrWriteFailed wraps any failure to persist a mutation. The mutation
	// is rolled back when this is returned.
	ErrWriteFailed = errors.New("state write failed")
	// ErrDuplicateID rejects an append whose id already exists.
	ErrDuplicateID = errors.New("duplicate id")
)

// Backend persists the raw JSON state document. Implementations must make
// Save atomic: after a failed Save, Load still returns the previous document.
type Backend interface {
	Name() string
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// ReferenceData exposes the read-only collections of the state document.
type ReferenceData interface {
	Routes(ctx context.Context) ([]entities.Route, error)
	SurgeData(ctx context.Context) ([]entities.SurgeArea, error)
	HistoricalSurgeData(ctx context.Context) ([]entities.SurgeSample, error)
	DriverHeatmapData(ctx context.Context) ([]entities.HeatmapPoint, error)
	Incentives(ctx context.Context) ([]entities.Incentive, error)
	SurgeEvents(ctx context.Context) ([]entities.SurgeEvent, error)
}

// PriceLockRepository is append-only.
type PriceLockRepository interface {
	ListPriceLocks(ctx context.Context) ([]entities.PriceLock, error)
	AppendPriceLock(ctx context.Context, lock entities.PriceLock) error
}

// NotificationRepository updates notifications in place and never deletes.
type NotificationRepository interface {
	ListNotifications(ctx context.Context) ([]entities.Notification, error)
	// UpdateNotificationsWhere applies update to every notification matching
	// match and returns how many matched. Zero matches is not an error.
	UpdateNotificationsWhere(ctx context.Context, match func(entities.Notification) bool, update func(*entities.Notification)) (int, error)
}

// PreferencesRepository reads and shallow-merges user preferences.
type PreferencesRepository interface {
	GetUserPreferences(ctx context.Context) (entities.UserPreferences, error)
	MergeNotificationPreferences(ctx context.Context, patch map[string]interface{}) (entities.UserPreferences, error)
}
