// Package utils provides shared helpers used across the application: seeded
// hashing, identifier generation, and numeric rounding for prices and
// multipliers.
//
// Go Learning Note — "pkg/" Directory Convention:
// Code under pkg/ is intended to be importable by external projects (unlike
// internal/ which is compiler-enforced private). This is a community
// convention, not a Go language feature.
package utils

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// lockSeq distinguishes ids minted within the same millisecond.
var lockSeq atomic.Uint64

// GenerateID creates a new UUID v4 string. Used for request ids and any
// record that does not need a time-ordered identifier.
func GenerateID() string {
	return uuid.New().String()
}

// NewLockID returns a time-derived price lock identifier of the form
// "lock-<unixMillis>-<seq>".
//
// Go Learning Note — sync/atomic:
// atomic.Uint64 gives a lock-free counter that is safe to bump from many
// goroutines at once. Pairing it with the timestamp keeps ids readable and
// sortable while still guaranteeing two calls in the same millisecond never
// collide.
func NewLockID(now time.Time) string {
	return fmt.Sprintf("lock-%d-%d", now.UnixMilli(), lockSeq.Add(1))
}
