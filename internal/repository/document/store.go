// Package document implements every repository interface on top of a single
// JSON state document persisted through a repository.Backend.
//
// Go Learning Note — Copy-on-Write Under a Mutex:
// A write clones the current document, applies the change to the clone,
// persists the clone, and only then swaps it in. If persisting fails the
// clone is discarded, so memory never runs ahead of what is on disk and a
// concurrent reader never observes a half-applied change.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"surge/internal/domain/entities"
	"surge/internal/metrics"
	"surge/internal/repository"
)

// Store is safe for concurrent use. Reads share an RLock; writes are
// serialized by one exclusive lock across all collections.
type Store struct {
	mu      sync.RWMutex
	doc     entities.Document
	backend repository.Backend
}

var (
	_ repository.ReferenceData          = (*Store)(nil)
	_ repository.PriceLockRepository    = (*Store)(nil)
	_ repository.NotificationRepository = (*Store)(nil)
	_ repository.PreferencesRepository  = (*Store)(nil)
)

// Open loads the document from backend. When the backend has none yet, seed
// is parsed and written through so the next start finds it.
func Open(ctx context.Context, backend repository.Backend, seed []byte) (*Store, error) {
	data, err := backend.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrNoDocument):
		data = seed
		if err := backend.Save(ctx, seed); err != nil {
			return nil, fmt.Errorf("%w: seeding %s: %w", repository.ErrWriteFailed, backend.Name(), err)
		}
		slog.Info("state document seeded", "backend", backend.Name())
	case err != nil:
		return nil, fmt.Errorf("load state from %s: %w", backend.Name(), err)
	}

	var doc entities.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode state from %s: %w", backend.Name(), err)
	}
	return &Store{doc: doc, backend: backend}, nil
}

// Snapshot returns a deep copy of the whole document.
func (s *Store) Snapshot(ctx context.Context) (entities.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDocument(s.doc)
}

// mutate runs fn against a clone of the document and commits the clone only
// if the backend accepts it.
func (s *Store) mutate(ctx context.Context, fn func(doc *entities.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := cloneDocument(s.doc)
	if err != nil {
		return err
	}
	if err := fn(&next); err != nil {
		return err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	err = s.backend.Save(ctx, data)
	metrics.ObserveStoreWrite(s.backend.Name(), err)
	if err != nil {
		slog.Error("state write failed, mutation rolled back", "backend", s.backend.Name(), "error", err)
		return fmt.Errorf("%w: %w", repository.ErrWriteFailed, err)
	}

	s.doc = next
	return nil
}

func cloneDocument(doc entities.Document) (entities.Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return entities.Document{}, fmt.Errorf("encode state: %w", err)
	}
	var out entities.Document
	if err := json.Unmarshal(data, &out); err != nil {
		return entities.Document{}, fmt.Errorf("decode state: %w", err)
	}
	return out, nil
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

// Reference data

func (s *Store) Routes(ctx context.Context) ([]entities.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.doc.Routes), nil
}

func (s *Store) SurgeData(ctx context.Context) ([]entities.SurgeArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.doc.SurgeData), nil
}

func (s *Store) HistoricalSurgeData(ctx context.Context) ([]entities.SurgeSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.doc.HistoricalSurgeData), nil
}

func (s *Store) DriverHeatmapData(ctx context.Context) ([]entities.HeatmapPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.doc.DriverHeatmapData), nil
}

func (s *Store) Incentives(ctx context.Context) ([]entities.Incentive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.doc.DriverPositioningIncentives), nil
}

func (s *Store) SurgeEvents(ctx context.Context) ([]entities.SurgeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.doc.SurgeEvents), nil
}

// Price locks

func (s *Store) ListPriceLocks(ctx context.Context) ([]entities.PriceLock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.doc.PriceLocks), nil
}

func (s *Store) AppendPriceLock(ctx context.Context, lock entities.PriceLock) error {
	return s.mutate(ctx, func(doc *entities.Document) error {
		for _, existing := range doc.PriceLocks {
			if existing.ID == lock.ID {
				return fmt.Errorf("%w: price lock %s", repository.ErrDuplicateID, lock.ID)
			}
		}
		doc.PriceLocks = append(doc.PriceLocks, lock)
		return nil
	})
}

// Notifications

func (s *Store) ListNotifications(ctx context.Context) ([]entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.doc.Notifications), nil
}

func (s *Store) UpdateNotificationsWhere(ctx context.Context, match func(entities.Notification) bool, update func(*entities.Notification)) (int, error) {
	var matched int
	err := s.mutate(ctx, func(doc *entities.Document) error {
		for i := range doc.Notifications {
			if match(doc.Notifications[i]) {
				update(&doc.Notifications[i])
				matched++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return matched, nil
}

// Preferences

func (s *Store) GetUserPreferences(ctx context.Context) (entities.UserPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePreferences(s.doc.UserPreferences), nil
}

// MergeNotificationPreferences overwrites the keys present in patch and keeps
// every other stored key.
func (s *Store) MergeNotificationPreferences(ctx context.Context, patch map[string]interface{}) (entities.UserPreferences, error) {
	var merged entities.UserPreferences
	err := s.mutate(ctx, func(doc *entities.Document) error {
		if doc.UserPreferences.NotificationPreferences == nil {
			doc.UserPreferences.NotificationPreferences = make(map[string]interface{}, len(patch))
		}
		maps.Copy(doc.UserPreferences.NotificationPreferences, patch)
		merged = clonePreferences(doc.UserPreferences)
		return nil
	})
	if err != nil {
		return entities.UserPreferences{}, err
	}
	return merged, nil
}

func clonePreferences(p entities.UserPreferences) entities.UserPreferences {
	p.NotificationPreferences = maps.Clone(p.NotificationPreferences)
	p.FavoriteRoutes = cloneSlice(p.FavoriteRoutes)
	return p
}
