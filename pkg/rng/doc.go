// Package rng provides the single deterministic random source threaded
// through every map generator.
//
// # Determinism
//
// A Source created from a given master seed always produces the same
// sequence of draws, which is what makes a seeded map reproducible
// bit-for-bit (spec invariant: same width/height/seed/kind/params in,
// byte-identical map out).
//
// # Sub-streams
//
// A generator is built out of several cooperating algorithms (the
// random-walk generator alone does anchor placement, per-walk stepping,
// end-room shrinking, and turn-point branching). Rather than share one
// cursor across all of them - which would make adding or reordering a
// sub-algorithm change every other sub-algorithm's sequence - Source
// derives independent, named sub-streams from the master seed via SHA-256:
//
//	childSeed = H(parentSeed, parentLabel, childLabel)
//
// Two Sources built from the same master seed and the same label sequence
// draw identically. No code outside this package may read from any other
// source of randomness; that is the only contract that makes determinism
// hold.
package rng
