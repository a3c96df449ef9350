// Package rng provides the seeded random number service used during forest
// growth: bootstrap draws, split-variable selection and tie-breaking.
//
// Each tree derives its own RNG from the forest seed and the tree index, so
// training output never depends on goroutine scheduling.
package rng

import (
	"golang.org/x/exp/rand"
)

// RNG wraps a seeded generator with the sampling operations the forest
// needs. It is not safe for concurrent use; every tree owns its own.
type RNG struct {
	r *rand.Rand
}

// New creates an RNG from a seed.
func New(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Derive creates the sub-RNG for a tree. The derivation depends only on the
// forest seed and the tree index, never on which worker grows the tree.
func Derive(seed uint64, tree int) *RNG {
	return New(seed ^ uint64(tree+1))
}

// UniformInt returns a uniform integer in [lo, hi).
func (g *RNG) UniformInt(lo, hi int) int {
	return lo + g.r.Intn(hi-lo)
}

// UniformFloat returns a uniform float64 in [0, 1).
func (g *RNG) UniformFloat() float64 {
	return g.r.Float64()
}

// SampleWithReplacement draws n indices uniformly with replacement from
// [0, universe). Used for bootstrap samples.
func (g *RNG) SampleWithReplacement(n, universe int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = g.r.Intn(universe)
	}
	return out
}

// SampleWithoutReplacement draws k distinct elements from the given
// universe, in random order. k must not exceed len(universe); callers
// validate mtry against the candidate set up front.
func (g *RNG) SampleWithoutReplacement(k int, universe []int) []int {
	// Partial Fisher-Yates over a scratch copy.
	scratch := make([]int, len(universe))
	copy(scratch, universe)
	for i := 0; i < k; i++ {
		j := i + g.r.Intn(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	return scratch[:k]
}

// PickMax returns the index of the maximum count, breaking ties uniformly at
// random. Reservoir selection over the tied maxima keeps it one pass.
func (g *RNG) PickMax(counts []int) int {
	best := -1
	bestCount := -1
	ties := 0
	for i, c := range counts {
		switch {
		case c > bestCount:
			bestCount = c
			best = i
			ties = 1
		case c == bestCount:
			ties++
			if g.r.Intn(ties) == 0 {
				best = i
			}
		}
	}
	return best
}
