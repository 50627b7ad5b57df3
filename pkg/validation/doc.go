// Package validation checks a generated grid.Grid against the structural
// properties every map producer (room packer, passage connector, random
// walk) is expected to uphold, regardless of which one built the map:
//
//   - Bilateral consistency: a wall or door a cell reports on a shared edge
//     matches what its neighbor reports on the opposite edge.
//   - Door implies wall: a cell never reports a door on an edge without
//     also reporting a wall there.
//   - Passable floor: a cell marked passable is never also marked empty.
//   - Border walls: every non-empty cell carries a wall on any edge that
//     borders the map boundary or an empty neighbor.
//   - Connectivity: every passable cell is reachable from every other
//     passable cell by stepping between edge-adjacent passable cells; wall
//     and door flags are not consulted. The room packer does not connect
//     its rooms, so its maps fail this check whenever they hold more than
//     one room.
//   - Door spacing: doors on the same wall line are not packed closer than
//     the minimum spacing a generator is expected to respect.
//
// Validate runs all of them and returns a Report a caller can inspect,
// serialize, or summarize for a human.
package validation
