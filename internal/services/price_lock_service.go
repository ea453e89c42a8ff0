package services

import (
	"context"
	"errors"
	"time"

	"surge/internal/config"
	"surge/internal/domain/entities"
	"surge/internal/repository"
	"surge/pkg/utils"
)

var ErrNoRoutes = errors.New("no reference routes available")

// LockResult is the LockSurgePrice payload.
type LockResult struct {
	Success   bool                   `json:"success"`
	PriceLock entities.PriceLockView `json:"priceLock"`
}

type PriceLockService struct {
	refs    repository.ReferenceData
	locks   repository.PriceLockRepository
	pricing config.PricingConfig
	now     func() time.Time
}

func NewPriceLockService(refs repository.ReferenceData, locks repository.PriceLockRepository, pricing config.PricingConfig) *PriceLockService {
	return &PriceLockService{
		refs:    refs,
		locks:   locks,
		pricing: pricing,
		now:     time.Now,
	}
}

// WithClock replaces the time source.
func (s *PriceLockService) WithClock(now func() time.Time) *PriceLockService {
	s.now = now
	return s
}

// LockPrice freezes multiplier for routeID for the configured TTL. An unknown
// route falls back to the first reference route.
//
//	lockedPrice  = basePrice * multiplier
//	currentPrice = basePrice * AssumedCurrentSurge
//	savings      = currentPrice - lockedPrice
func (s *PriceLockService) LockPrice(ctx context.Context, routeID string, multiplier float64) (*LockResult, error) {
	routes, err := s.refs.Routes(ctx)
	if err != nil {
		return nil, err
	}
	route, err := resolveRoute(routes, routeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	lockedPrice := utils.Round2(route.BasePrice * multiplier)
	currentPrice := utils.Round2(route.BasePrice * s.pricing.AssumedCurrentSurge)

	lock := entities.PriceLock{
		ID:            utils.NewLockID(now),
		RouteID:       routeID,
		Multiplier:    multiplier,
		OriginalPrice: route.BasePrice,
		LockedPrice:   lockedPrice,
		CurrentPrice:  currentPrice,
		Savings:       utils.Round2(currentPrice - lockedPrice),
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.pricing.LockTTL),
		Route: entities.RouteSnapshot{
			Origin:      route.Origin,
			Destination: route.Destination,
		},
	}

	if err := s.locks.AppendPriceLock(ctx, lock); err != nil {
		return nil, err
	}
	return &LockResult{Success: true, PriceLock: lock.View(now)}, nil
}

// ListPriceLocks returns every lock with its status as of now.
func (s *PriceLockService) ListPriceLocks(ctx context.Context) ([]entities.PriceLockView, error) {
	locks, err := s.locks.ListPriceLocks(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]entities.PriceLockView, len(locks))
	for i, l := range locks {
		views[i] = l.View(now)
	}
	return views, nil
}

func resolveRoute(routes []entities.Route, id string) (entities.Route, error) {
	if len(routes) == 0 {
		return entities.Route{}, ErrNoRoutes
	}
	for _, r := range routes {
		if r.ID == id {
			return r, nil
		}
	}
	return routes[0], nil
}
