package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// Source is the deterministic PRNG every generator draws from.
//
// A Source is not shared directly between sub-algorithms that ought to
// evolve independently (the random-walk generator's anchor placement
// versus its per-walk stepping, say); callers derive a labelled child with
// Derive instead, so that adding or removing one sub-algorithm's draws
// never perturbs another's sequence.
type Source struct {
	seed   uint64
	label  string
	source *rand.Rand
}

// NewSource creates the top-level deterministic source for a single
// generator run. Label is typically the generator kind ("walk", "room",
// "passage"); it does not affect this Source's own seed, but Derive hashes
// it into the seed of every child.
func NewSource(seed uint64, label string) *Source {
	return &Source{
		seed:   seed,
		label:  label,
		source: rand.New(rand.NewSource(int64(seed))),
	}
}

// Derive returns an independent child Source for the named sub-stream,
// computed deterministically from this Source's seed and label:
//
//	childSeed = H(parentSeed, parentLabel, childLabel)
//
// Two Derive calls with the same parent seed/label and the same childLabel
// always produce the same child sequence.
func (s *Source) Derive(childLabel string) *Source {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], s.seed)
	h.Write(buf[:])
	h.Write([]byte(s.label))
	h.Write([]byte(childLabel))
	sum := h.Sum(nil)
	childSeed := binary.BigEndian.Uint64(sum[:8])

	return &Source{
		seed:   childSeed,
		label:  childLabel,
		source: rand.New(rand.NewSource(int64(childSeed))),
	}
}

// Seed returns the concrete seed this Source was constructed with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Label returns the label this Source was constructed or derived with.
func (s *Source) Label() string {
	return s.label
}

// Uint64 returns a pseudo-random 64-bit unsigned integer.
func (s *Source) Uint64() uint64 {
	return s.source.Uint64()
}

// Intn returns a pseudo-random integer in [0, n). It panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn argument must be positive")
	}
	return s.source.Intn(n)
}

// IntRange returns a pseudo-random integer in [lo, hi]. It panics if
// lo > hi.
func (s *Source) IntRange(lo, hi int) int {
	if lo > hi {
		panic("rng: IntRange lo must be <= hi")
	}
	if lo == hi {
		return lo
	}
	return lo + s.source.Intn(hi-lo+1)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (s *Source) Float64() float64 {
	return s.source.Float64()
}

// Float64Range returns a pseudo-random float64 in [lo, hi). It panics if
// lo >= hi.
func (s *Source) Float64Range(lo, hi float64) float64 {
	if lo >= hi {
		panic("rng: Float64Range lo must be < hi")
	}
	return lo + s.source.Float64()*(hi-lo)
}

// Bool returns a pseudo-random boolean with equal probability of either
// outcome.
func (s *Source) Bool() bool {
	return s.source.Intn(2) == 1
}

// Chance reports true with probability p. p<=0 always returns false, p>=1
// always returns true.
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.source.Float64() < p
}

// Shuffle pseudo-randomizes the order of n elements via swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.source.Shuffle(n, swap)
}

// WeightedChoice selects an index from weights using weighted random
// selection. Weights must be non-negative. Returns -1 if weights is empty
// or all weights are zero.
func (s *Source) WeightedChoice(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("rng: WeightedChoice weights must be non-negative")
		}
		total += w
	}
	if total == 0 {
		return -1
	}

	target := s.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// FreshSeed produces an implementation-defined seed for callers that did
// not supply one of their own. It is never used once a generator's Source
// has been constructed - only to pick the top-level seed.
func FreshSeed(entropy uint64) uint64 {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], entropy)
	h.Write(buf[:])
	h.Write([]byte("fresh-seed"))
	sum := h.Sum(nil)
	seed := binary.BigEndian.Uint64(sum[:8])
	if seed == 0 {
		seed = 1
	}
	return seed
}
