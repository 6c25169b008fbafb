package core

import "math/rand"

// RNG is the single random source of an engine instance.
// Every draw (gem colors, outcome rolls, bird and cell sampling) goes through
// one RNG so that a seed fully reproduces a session.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a generator seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a float in [0, 1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// Intn returns an int in [0, n). Returns 0 when n <= 0.
func (g *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.r.Intn(n)
}

// Between returns an int in the inclusive range [lo, hi].
func (g *RNG) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.r.Intn(hi-lo+1)
}

// Chance reports whether a roll falls below probability p.
func (g *RNG) Chance(p float64) bool {
	return g.r.Float64() < p
}

// Perm returns a random permutation of [0, n).
func (g *RNG) Perm(n int) []int {
	if n <= 0 {
		return nil
	}
	return g.r.Perm(n)
}

// Weighted picks an index from weights proportionally.
// Non-positive weights are never picked; returns -1 if nothing can be picked.
func (g *RNG) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	roll := g.r.Float64() * total
	cumulative := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		last = i
		if roll < cumulative {
			return i
		}
	}
	return last
}
