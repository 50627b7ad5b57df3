// Package grid provides the shared dungeon data model: a flat 2D grid of
// cells carrying wall, door, and passability flags.
//
// The coordinate convention is fixed: x increases eastward, y increases
// northward, and (0,0) is the south-west corner. All generators in
// pkg/mapgen build on top of this package, and pkg/export/pkg/render
// consume it read-only once a generator returns.
package grid
