package validation

import (
	"fmt"

	"github.com/dshills/dungeonwalk/pkg/grid"
)

// MinDoorSpacing is the default minimum number of cells required between two
// doors on the same wall line, matching the spacing the random-walk and room
// generators enforce when placing their own doors.
const MinDoorSpacing = 2

// CheckBilateralConsistency reports whether every wall and door a cell
// claims on its north or east edge is mirrored by its neighbor's south or
// west edge. Walls and doors are properties of the shared edge, not of a
// single cell, so the two sides must always agree.
func CheckBilateralConsistency(g *grid.Grid) (bool, string) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.MustCellAt(x, y)
			if c.IsEmpty {
				continue
			}
			for _, d := range [2]grid.Direction{grid.North, grid.East} {
				n, nx, ny, ok := g.Neighbor(x, y, d)
				if !ok || n.IsEmpty {
					continue
				}
				if c.HasWall(d) != n.HasWall(d.Opposite()) {
					return false, fmt.Sprintf("wall mismatch between (%d,%d) and (%d,%d) facing %v", x, y, nx, ny, d)
				}
				if c.HasDoor(d) != n.HasDoor(d.Opposite()) {
					return false, fmt.Sprintf("door mismatch between (%d,%d) and (%d,%d) facing %v", x, y, nx, ny, d)
				}
			}
		}
	}
	return true, "all shared edges agree on wall and door state"
}

// CheckDoorImpliesWall reports whether every door-bearing edge also carries
// a wall. A door is an opening cut into a wall; a door without a wall is not
// a valid cell state.
func CheckDoorImpliesWall(g *grid.Grid) (bool, string) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.MustCellAt(x, y)
			for _, d := range grid.Directions {
				if c.HasDoor(d) && !c.HasWall(d) {
					return false, fmt.Sprintf("cell (%d,%d) has a door facing %v without a wall", x, y, d)
				}
			}
		}
	}
	return true, "every door is backed by a wall"
}

// CheckPassableFloor reports whether every passable cell is also non-empty.
func CheckPassableFloor(g *grid.Grid) (bool, string) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.MustCellAt(x, y)
			if c.IsPassable && c.IsEmpty {
				return false, fmt.Sprintf("cell (%d,%d) is marked passable and empty", x, y)
			}
		}
	}
	return true, "every passable cell is carved floor"
}

// CheckBorderWalls reports whether every non-empty cell carries a wall on
// any edge that borders the map boundary or an empty neighbor.
func CheckBorderWalls(g *grid.Grid) (bool, string) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.MustCellAt(x, y)
			if c.IsEmpty {
				continue
			}
			for _, d := range grid.Directions {
				n, _, _, ok := g.Neighbor(x, y, d)
				if (!ok || n.IsEmpty) && !c.HasWall(d) {
					return false, fmt.Sprintf("cell (%d,%d) is missing a border wall facing %v", x, y, d)
				}
			}
		}
	}
	return true, "every map edge and void boundary carries a wall"
}

// CheckConnectivity reports whether every passable cell can be reached from
// every other passable cell by stepping between edge-adjacent passable
// cells. Wall and door flags are not consulted. A grid with no passable
// cells trivially passes.
func CheckConnectivity(g *grid.Grid) (bool, string) {
	cells := g.Cells()
	start := -1
	total := 0
	for i, c := range cells {
		if c.IsPassable {
			if start == -1 {
				start = i
			}
			total++
		}
	}
	if start == -1 {
		return true, "no passable cells to connect"
	}

	visited := make([]bool, len(cells))
	stack := []int{start}
	visited[start] = true
	visitedCount := 0
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visitedCount++
		x, y := i%g.Width, i/g.Width
		for _, d := range grid.Directions {
			n, nx, ny, ok := g.Neighbor(x, y, d)
			if !ok || !n.IsPassable {
				continue
			}
			ni := ny*g.Width + nx
			if !visited[ni] {
				visited[ni] = true
				stack = append(stack, ni)
			}
		}
	}

	if visitedCount != total {
		return false, fmt.Sprintf("passable cells are not all connected: reached %d of %d", visitedCount, total)
	}
	return true, fmt.Sprintf("all %d passable cells form a single connected region", total)
}

// CheckDoorSpacing reports whether every pair of doors on the same wall line
// is separated by at least spacing cells. Cramming doors onto one wall
// defeats the point of a door as a deliberate connection point.
func CheckDoorSpacing(g *grid.Grid, spacing int) (bool, string) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.MustCellAt(x, y)
			if c.IsEmpty {
				continue
			}
			for _, d := range [2]grid.Direction{grid.North, grid.South} {
				if !c.HasDoor(d) {
					continue
				}
				if ok, detail := doorClearAhead(g, x, y, d, grid.East, spacing); !ok {
					return false, detail
				}
			}
			for _, d := range [2]grid.Direction{grid.East, grid.West} {
				if !c.HasDoor(d) {
					continue
				}
				if ok, detail := doorClearAhead(g, x, y, d, grid.North, spacing); !ok {
					return false, detail
				}
			}
		}
	}
	return true, fmt.Sprintf("no two doors on the same wall line sit closer than %d cells", spacing)
}

// doorClearAhead scans spacing cells along axis in both directions from
// (x, y) looking for another door facing the same direction d.
func doorClearAhead(g *grid.Grid, x, y int, d, axis grid.Direction, spacing int) (bool, string) {
	dx, dy := axis.Delta()
	for _, sign := range [2]int{1, -1} {
		cx, cy := x, y
		for step := 1; step <= spacing; step++ {
			cx, cy = cx+sign*dx, cy+sign*dy
			c, ok := g.CellAt(cx, cy)
			if !ok || c.IsEmpty {
				break
			}
			if c.HasDoor(d) {
				return false, fmt.Sprintf("doors facing %v at (%d,%d) and (%d,%d) are only %d cell(s) apart", d, x, y, cx, cy, step)
			}
		}
	}
	return true, ""
}
