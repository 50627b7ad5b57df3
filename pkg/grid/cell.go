package grid

// DefaultCellType is the cell_type tag applied to every cell a generator
// paints unless overridden.
const DefaultCellType = "Default"

// Cell is one grid location. A zero-value Cell has IsEmpty false; use
// NewEmptyCell for a cell that is not part of the dungeon (no floor, no
// walls, not passable).
type Cell struct {
	IsEmpty    bool
	IsPassable bool

	walls [4]bool
	doors [4]bool

	CellType   string
	Properties map[string]string
}

// NewEmptyCell returns a cell in its empty lifecycle state.
func NewEmptyCell() Cell {
	return Cell{IsEmpty: true, CellType: DefaultCellType}
}

// SetEmpty sets IsEmpty. Setting it to true also clears IsPassable, per the
// passable-floor invariant; setting it to false leaves IsPassable as is.
func (c *Cell) SetEmpty(empty bool) {
	c.IsEmpty = empty
	if empty {
		c.IsPassable = false
	}
}

// HasWall reports whether the cell has a wall on side d.
func (c *Cell) HasWall(d Direction) bool {
	return c.walls[d]
}

// SetWall sets or clears the wall flag on side d.
func (c *Cell) SetWall(d Direction, has bool) {
	c.walls[d] = has
}

// HasDoor reports whether the cell has a door on side d.
func (c *Cell) HasDoor(d Direction) bool {
	return c.doors[d]
}

// SetDoor sets the door flag on side d. Per the door-implies-wall
// invariant, setting a door also sets the wall on that side; clearing a
// door does not clear the wall.
func (c *Cell) SetDoor(d Direction, has bool) {
	c.doors[d] = has
	if has {
		c.walls[d] = true
	}
}

// property accessors, used by generators that tag cells (anchor room,
// end rooms) and by exporters that need a concrete map, never nil.

// Property returns a property value and whether it was set.
func (c *Cell) Property(key string) (string, bool) {
	if c.Properties == nil {
		return "", false
	}
	v, ok := c.Properties[key]
	return v, ok
}

// SetProperty sets a property, allocating the map lazily.
func (c *Cell) SetProperty(key, value string) {
	if c.Properties == nil {
		c.Properties = make(map[string]string)
	}
	c.Properties[key] = value
}
