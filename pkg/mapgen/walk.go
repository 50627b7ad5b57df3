package mapgen

import (
	"github.com/dshills/dungeonwalk/pkg/grid"
	"github.com/dshills/dungeonwalk/pkg/rng"
)

// Random-walk generator tuning constants, named after the quantities
// spec'd for the algorithm.
const (
	minWalkSteps          = 2
	maxPossibleSteps      = 16
	initialContinueChance = 0.75
	turnChance            = 0.5

	minEndRoomSize = 2
	maxEndRoomSize = 4

	endRoomDoorChance       = 0.5
	edgeDoorReduction       = 0.15
	minWallDistanceFromEdge = 3

	minDoorSpacing = 2
)

type turn int

const (
	turnNone turn = iota
	turnLeft
	turnRight
)

type point struct{ x, y int }

type turnPoint struct {
	at       point
	notTaken grid.Direction
}

type doorStub struct {
	x, y int
	dir  grid.Direction
}

type walkState struct {
	x, y       int
	dir        grid.Direction
	lastTurn   turn
	totalSteps int
}

// generateWalk implements the random-walk corridor generator: a 3x3 anchor
// room at map centre, four seed walks, and a drain loop that keeps
// launching fresh walks from every door stub and turn-point branch until
// none remain.
func generateWalk(g *grid.Grid, source *rng.Source) ([]string, error) {
	steps := source.Derive("steps")
	rooms := source.Derive("end-rooms")
	branch := source.Derive("branch")

	cx, cy := g.Width/2, g.Height/2
	carveAnchorRoom(g, cx, cy)

	unresolved := map[point]bool{
		{cx, cy + 1}: true,
		{cx + 1, cy}: true,
		{cx, cy - 1}: true,
		{cx - 1, cy}: true,
	}

	var queue []walkState
	queue = append(queue,
		walkState{x: cx, y: cy + 1, dir: grid.North, totalSteps: 0},
		walkState{x: cx + 1, y: cy, dir: grid.East, totalSteps: 0},
		walkState{x: cx, y: cy - 1, dir: grid.South, totalSteps: 0},
		walkState{x: cx - 1, y: cy, dir: grid.West, totalSteps: 0},
	)

	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]
		delete(unresolved, point{w.x, w.y})

		termination, turnPoints, newStubs := runWalk(g, steps, rooms, w)
		_ = termination

		for _, stub := range newStubs {
			dx, dy := stub.dir.Delta()
			outside := point{stub.x + dx, stub.y + dy}
			unresolved[outside] = true
			queue = append(queue, walkState{x: outside.x, y: outside.y, dir: stub.dir, totalSteps: 0})
		}

		for _, tp := range turnPoints {
			if !branch.Chance(0.5) {
				continue
			}
			queue = append(queue, walkState{x: tp.at.x, y: tp.at.y, dir: tp.notTaken, totalSteps: 0})
		}
	}

	g.NormalizeWalls()
	g.ApplyBorderWalls()

	var warnings []string
	if len(unresolved) > 0 {
		warnings = append(warnings, "unresolved door stubs remain after drain loop")
	}
	return warnings, nil
}

func carveAnchorRoom(g *grid.Grid, cx, cy int) {
	for y := cy - 1; y <= cy+1; y++ {
		for x := cx - 1; x <= cx+1; x++ {
			c := g.MustCellAt(x, y)
			c.SetEmpty(false)
			c.IsPassable = true
		}
	}
	g.ApplyBorderWalls()
	g.MustCellAt(cx, cy+1).SetDoor(grid.North, true)
	g.MustCellAt(cx+1, cy).SetDoor(grid.East, true)
	g.MustCellAt(cx, cy-1).SetDoor(grid.South, true)
	g.MustCellAt(cx-1, cy).SetDoor(grid.West, true)
}

type walkTermination int

const (
	terminatedOutOfBounds walkTermination = iota
	terminatedAtRoom
	terminatedDeadEnd
	terminatedIntoEndRoom
)

// runWalk carves a single corridor run starting at w, returning how it
// ended, the turn points it recorded for deferred branching, and the fresh
// door stubs it created (end-room doors, via the add-random-doors routine).
func runWalk(g *grid.Grid, steps, rooms *rng.Source, w walkState) (walkTermination, []turnPoint, []doorStub) {
	// The cell the walk launches from is already carved (anchor-room door
	// cell or a mid-corridor turn point); carve the stub's immediate
	// outside cell before stepping.
	carveCorridorCellOpen(g, w.x, w.y)

	var turnPoints []turnPoint

	for {
		dx, dy := w.dir.Delta()
		nx, ny := w.x+dx, w.y+dy

		if !innerBounds(g, nx, ny) {
			return terminatedOutOfBounds, turnPoints, nil
		}

		next := g.MustCellAt(nx, ny)
		if !next.IsEmpty && next.HasWall(w.dir.Opposite()) {
			if doorSpacingOK(g, nx, ny, w.dir.Opposite(), minDoorSpacing) {
				cur := g.MustCellAt(w.x, w.y)
				cur.SetDoor(w.dir, true)
				next.SetDoor(w.dir.Opposite(), true)
			}
			return terminatedAtRoom, turnPoints, nil
		}

		carveCorridorCellOpen(g, nx, ny)
		w.x, w.y = nx, ny
		w.totalSteps++

		if w.totalSteps >= minWalkSteps {
			progress := float64(w.totalSteps-minWalkSteps) / float64(maxPossibleSteps-minWalkSteps)
			pContinue := initialContinueChance * (1 - progress)
			if !steps.Chance(pContinue) {
				break
			}
		}

		if steps.Chance(turnChance) {
			newTurn := turnLeft
			switch w.lastTurn {
			case turnLeft:
				newTurn = turnRight
			case turnRight:
				newTurn = turnLeft
			case turnNone:
				if steps.Bool() {
					newTurn = turnRight
				}
			}

			oldDir := w.dir
			if newTurn == turnLeft {
				w.dir = oldDir.TurnLeft()
				turnPoints = append(turnPoints, turnPoint{at: point{w.x, w.y}, notTaken: oldDir.TurnRight()})
			} else {
				w.dir = oldDir.TurnRight()
				turnPoints = append(turnPoints, turnPoint{at: point{w.x, w.y}, notTaken: oldDir.TurnLeft()})
			}
			w.lastTurn = newTurn
		}
	}

	placed, newStubs := placeEndRoom(g, rooms, w)
	if placed {
		return terminatedIntoEndRoom, turnPoints, newStubs
	}
	g.MustCellAt(w.x, w.y).SetWall(w.dir, true)
	return terminatedDeadEnd, turnPoints, nil
}

func innerBounds(g *grid.Grid, x, y int) bool {
	return x >= 1 && x < g.Width-1 && y >= 1 && y < g.Height-1
}

func carveCorridorCellOpen(g *grid.Grid, x, y int) {
	c := g.MustCellAt(x, y)
	if !c.IsEmpty {
		return
	}
	c.SetEmpty(false)
	c.IsPassable = true
}

// placeEndRoom attempts to seat a small room against the walker's final
// cell, shrinking along the heading axis until it fits or falls below the
// minimum size.
func placeEndRoom(g *grid.Grid, source *rng.Source, w walkState) (bool, []doorStub) {
	width := source.IntRange(minEndRoomSize, maxEndRoomSize)
	height := source.IntRange(minEndRoomSize, maxEndRoomSize)

	for {
		alongHeading, perp := width, height
		if !w.dir.Horizontal() {
			alongHeading, perp = height, width
		}
		if alongHeading < minEndRoomSize || perp < minEndRoomSize {
			return false, nil
		}

		r, ok := seatEndRoom(g, w, alongHeading, perp)
		if ok {
			carveRoomFromRect(g, r)
			stubs := addRandomDoorsToRoom(g, source, r, w.dir.Opposite())
			entry := doorCellFacingWalker(r, w)
			entryC := g.MustCellAt(entry.x, entry.y)
			walkerC := g.MustCellAt(w.x, w.y)
			entryC.SetDoor(w.dir.Opposite(), true)
			walkerC.SetDoor(w.dir, true)
			return true, stubs
		}

		if w.dir.Horizontal() {
			width--
		} else {
			height--
		}
	}
}

// seatEndRoom computes the room rectangle whose face opposite the walker's
// heading abuts the walker's cell, centred on the perpendicular axis, and
// reports whether it fits without overlapping any non-empty cell.
func seatEndRoom(g *grid.Grid, w walkState, alongHeading, perp int) (rect, bool) {
	dx, dy := w.dir.Delta()
	var r rect
	if w.dir.Horizontal() {
		r.w, r.h = alongHeading, perp
		if dx > 0 {
			r.x = w.x + 1
		} else {
			r.x = w.x - alongHeading
		}
		r.y = w.y - perp/2
	} else {
		r.w, r.h = perp, alongHeading
		if dy > 0 {
			r.y = w.y + 1
		} else {
			r.y = w.y - alongHeading
		}
		r.x = w.x - perp/2
	}

	if r.x < 1 || r.y < 1 || r.x+r.w > g.Width-1 || r.y+r.h > g.Height-1 {
		return rect{}, false
	}
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			c := g.MustCellAt(x, y)
			if !c.IsEmpty && !(x == w.x && y == w.y) {
				return rect{}, false
			}
		}
	}
	return r, true
}

func carveRoomFromRect(g *grid.Grid, r rect) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			c := g.MustCellAt(x, y)
			c.SetEmpty(false)
			c.IsPassable = true
		}
	}
	g.ApplyBorderWalls()
}

func doorCellFacingWalker(r rect, w walkState) point {
	switch w.dir {
	case grid.North:
		return point{w.x, r.y}
	case grid.South:
		return point{w.x, r.y + r.h - 1}
	case grid.East:
		return point{r.x, w.y}
	default: // West
		return point{r.x + r.w - 1, w.y}
	}
}

// addRandomDoorsToRoom scatters extra doors on every wall but the entry
// wall, biasing the chance down for positions close to the map edge.
func addRandomDoorsToRoom(g *grid.Grid, source *rng.Source, r rect, entryDir grid.Direction) []doorStub {
	var stubs []doorStub
	for _, pos := range roomWallPositions(r) {
		if pos.dir == entryDir {
			continue
		}
		distToEdge := distanceToMapEdge(g, pos.x, pos.y)
		chance := endRoomDoorChance - float64(minWallDistanceFromEdge-distToEdge)*edgeDoorReduction
		if chance < 0 {
			chance = 0
		}
		if !source.Chance(chance) {
			continue
		}
		if !doorSpacingOK(g, pos.x, pos.y, pos.dir, minDoorSpacing*2) {
			continue
		}
		c := g.MustCellAt(pos.x, pos.y)
		c.SetDoor(pos.dir, true)
		stubs = append(stubs, doorStub{x: pos.x, y: pos.y, dir: pos.dir})
	}
	return stubs
}

func distanceToMapEdge(g *grid.Grid, x, y int) int {
	d := x
	if v := g.Width - 1 - x; v < d {
		d = v
	}
	if y < d {
		d = y
	}
	if v := g.Height - 1 - y; v < d {
		d = v
	}
	return d
}

// doorSpacingOK reports whether placing a door at (x, y) facing dir
// respects the minimum spacing from any existing door on the same wall
// segment, scanning along the wall's own axis.
func doorSpacingOK(g *grid.Grid, x, y int, dir grid.Direction, spacing int) bool {
	var step grid.Direction
	if dir == grid.North || dir == grid.South {
		step = grid.East
	} else {
		step = grid.North
	}
	dx, dy := step.Delta()

	for i := -spacing; i <= spacing; i++ {
		if i == 0 {
			continue
		}
		cx, cy := x+dx*i, y+dy*i
		c, ok := g.CellAt(cx, cy)
		if !ok || c.IsEmpty {
			continue
		}
		if c.HasDoor(dir) {
			return false
		}
	}
	return true
}
