package entities

import "time"

// LockStatus is derived from the clock at read time. It is never stored.
type LockStatus string

const (
	LockStatusActive  LockStatus = "active"
	LockStatusExpired LockStatus = "expired"
)

// Route is reference data for price locks. BasePrice is the un-surged fare.
type Route struct {
	ID          string  `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	BasePrice   float64 `json:"basePrice"`
}

// RouteSnapshot freezes the route endpoints at lock time so later edits to
// reference data do not rewrite history.
type RouteSnapshot struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// PriceLock is a time-boxed commitment to a fixed multiplier for a route.
// Locks are append-only: once created, no field changes.
type PriceLock struct {
	ID            string        `json:"id"`
	RouteID       string        `json:"routeId"`
	Multiplier    float64       `json:"multiplier"`
	OriginalPrice float64       `json:"originalPrice"`
	LockedPrice   float64       `json:"lockedPrice"`
	CurrentPrice  float64       `json:"currentPrice"`
	Savings       float64       `json:"savings"`
	CreatedAt     time.Time     `json:"createdAt"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	Route         RouteSnapshot `json:"route"`
}

// StatusAt reports whether the lock is still honored at now. A lock is
// expired strictly after ExpiresAt.
func (l PriceLock) StatusAt(now time.Time) LockStatus {
	if now.After(l.ExpiresAt) {
		return LockStatusExpired
	}
	return LockStatusActive
}

// PriceLockView is the read model returned to clients: the stored lock plus
// its status at the time of the read.
//
// Go Learning Note — Struct Embedding:
// Embedding PriceLock promotes its fields, and encoding/json flattens them
// into the same object, so clients see one record with a "status" key.
type PriceLockView struct {
	PriceLock
	Status LockStatus `json:"status"`
}

// View derives the read model for now.
func (l PriceLock) View(now time.Time) PriceLockView {
	return PriceLockView{PriceLock: l, Status: l.StatusAt(now)}
}
