// Package rng provides the random sources used by the scoring engine and the
// tile bag. Everything that rolls dice takes a Source so tests and daily runs
// can pin outcomes.
package rng

import (
	"math/rand/v2"
	"sync"
)

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Next() float64
}

// Rand is a seeded, concurrency-safe generator.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a generator whose sequence is fully determined by seed.
func New(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next implements Source.
func (g *Rand) Next() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Float64()
}

// Shuffle permutes n elements using swap.
func (g *Rand) Shuffle(n int, swap func(i, j int)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.r.Shuffle(n, swap)
}

type global struct{}

func (global) Next() float64 { return rand.Float64() }

// Global returns a Source backed by the process-wide generator.
func Global() Source { return global{} }

// Fixed replays vals in order, wrapping around. Useful for tests and replays.
type Fixed struct {
	mu   sync.Mutex
	vals []float64
	i    int
}

// NewFixed returns a Source that cycles through vals.
func NewFixed(vals ...float64) *Fixed {
	if len(vals) == 0 {
		vals = []float64{0}
	}
	return &Fixed{vals: vals}
}

// Next implements Source.
func (f *Fixed) Next() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}
