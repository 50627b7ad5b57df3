package grid

// Grid is the sealed dungeon map produced by a generator. Coordinates run
// x east, y north, with (0,0) at the south-west corner. Cells are stored
// flat, row-major in y: index = y*Width + x.
type Grid struct {
	Width, Height int
	Name          string
	FloorLevel    int
	Metadata      map[string]string

	cells []Cell
}

// NewGrid allocates a width x height grid of empty cells. Width and height
// must already have passed validation (see pkg/mapgen); NewGrid itself does
// not re-validate, matching the teacher's layered "validate once, then
// construct" pattern.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
	for i := range g.cells {
		g.cells[i] = NewEmptyCell()
	}
	return g
}

// InBounds reports whether (x, y) addresses a real cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

func (g *Grid) index(x, y int) int {
	return y*g.Width + x
}

// CellAt returns a pointer to the cell at (x, y) and true, or nil and false
// if the coordinates are out of bounds. Callers that already know the
// coordinates are in-bounds may use MustCellAt instead.
func (g *Grid) CellAt(x, y int) (*Cell, bool) {
	if !g.InBounds(x, y) {
		return nil, false
	}
	return &g.cells[g.index(x, y)], true
}

// MustCellAt returns a pointer to the cell at (x, y). It panics if the
// coordinates are out of bounds; generators call this only after checking
// InBounds, so the panic signals a generator bug, not bad input.
func (g *Grid) MustCellAt(x, y int) *Cell {
	c, ok := g.CellAt(x, y)
	if !ok {
		panic("grid: MustCellAt called with out-of-bounds coordinates")
	}
	return c
}

// Neighbor returns the cell adjacent to (x, y) in direction d, or nil/false
// if that neighbor is off the map.
func (g *Grid) Neighbor(x, y int, d Direction) (*Cell, int, int, bool) {
	dx, dy := d.Delta()
	nx, ny := x+dx, y+dy
	c, ok := g.CellAt(nx, ny)
	return c, nx, ny, ok
}

// Cells returns the flat, row-major backing slice. Callers must not resize
// it; mutating in place is fine while a generator still owns the grid.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// SetMetadata sets a metadata key, allocating the map lazily.
func (g *Grid) SetMetadata(key, value string) {
	if g.Metadata == nil {
		g.Metadata = make(map[string]string)
	}
	g.Metadata[key] = value
}

// WallTowards reports whether the cell at (x, y) has a wall facing
// direction d. Out-of-bounds coordinates report false (there is no wall to
// report on a cell that doesn't exist).
func (g *Grid) WallTowards(x, y int, d Direction) bool {
	c, ok := g.CellAt(x, y)
	if !ok {
		return false
	}
	return c.HasWall(d)
}

// ApplyBorderWalls sets, for every non-empty cell whose neighbor in some
// direction is empty or off-map, the wall flag facing that direction. This
// is invariant 4 (border walls) of the data model and is shared by every
// generator's final pass.
func (g *Grid) ApplyBorderWalls() {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.MustCellAt(x, y)
			if c.IsEmpty {
				continue
			}
			for _, d := range Directions {
				neighbor, _, _, ok := g.Neighbor(x, y, d)
				if !ok || neighbor.IsEmpty {
					c.SetWall(d, true)
				}
			}
		}
	}
}

// NormalizeWalls clears a mutual wall between two adjacent non-empty cells
// whenever only one side still claims it, per the bilateral wall
// consistency invariant. It is the "final normalizing pass" spec.md §4.4 and
// §9 describe: a passage cell records a wall toward a neighbor at the
// moment that neighbor is still empty, and the neighbor is never
// back-updated when it is later carved. Room-perimeter walls are left
// alone: a wall is only cleared when BOTH sides are passable floor cells
// that disagree, which can only happen between two carved passage/room
// cells, never between a room's real perimeter and the void outside it
// (the void has no opinion - it is empty, and ApplyBorderWalls already owns
// that edge).
func (g *Grid) NormalizeWalls() {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.MustCellAt(x, y)
			if c.IsEmpty || !c.IsPassable {
				continue
			}
			for _, d := range [2]Direction{North, East} {
				neighbor, _, _, ok := g.Neighbor(x, y, d)
				if !ok || neighbor.IsEmpty || !neighbor.IsPassable {
					continue
				}
				opp := d.Opposite()
				hasDoor := c.HasDoor(d) || neighbor.HasDoor(opp)
				if hasDoor {
					c.SetDoor(d, true)
					neighbor.SetDoor(opp, true)
					continue
				}
				if c.HasWall(d) != neighbor.HasWall(opp) {
					c.SetWall(d, false)
					neighbor.SetWall(opp, false)
				}
			}
		}
	}
}
