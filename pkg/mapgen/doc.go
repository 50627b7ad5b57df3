// Package mapgen builds sealed dungeon grids. It owns parameter validation,
// the empty-map/generate lifecycle shared by every algorithm, and the three
// concrete generators: room packing, passage connection, and random-walk
// corridor carving.
//
// Every generator is a pure function of (width, height, seed, kind-specific
// parameters): given the same inputs it produces byte-identical grids, and
// it draws randomness exclusively from the pkg/rng Source it is handed.
package mapgen
