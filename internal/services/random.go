package services

import (
	"math/rand/v2"
	"sync"
)

// Randomizer is the source of non-deterministic choices in the subscription
// polls. Tests inject a seeded one.
type Randomizer interface {
	Float64() float64
	IntN(n int) int
}

type globalRandomizer struct{}

func (globalRandomizer) Float64() float64 { return rand.Float64() }
func (globalRandomizer) IntN(n int) int   { return rand.IntN(n) }

// DefaultRandomizer uses the math/rand/v2 top-level functions, which are
// safe for concurrent use.
func DefaultRandomizer() Randomizer {
	return globalRandomizer{}
}

type seededRandomizer struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRandomizer returns a reproducible Randomizer that is safe to share
// between goroutines.
func NewSeededRandomizer(seed uint64) Randomizer {
	return &seededRandomizer{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededRandomizer) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seededRandomizer) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}
