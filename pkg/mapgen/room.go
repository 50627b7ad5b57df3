package mapgen

import (
	"github.com/dshills/dungeonwalk/pkg/grid"
	"github.com/dshills/dungeonwalk/pkg/rng"
)

// Room packer tuning constants.
const (
	minRoomW              = 4
	minRoomH              = 4
	maxRoomSize           = 10
	roomMaxPlacementTries = 100
	additionalDoorChance  = 0.3
)

type rect struct {
	x, y, w, h int
}

func (r rect) overlaps(o rect, padding int) bool {
	return r.x-padding < o.x+o.w &&
		r.x+r.w+padding > o.x &&
		r.y-padding < o.y+o.h &&
		r.y+r.h+padding > o.y
}

// generateRoom implements the room-based packer: independent rectangular
// rooms, each wall-sealed and door-punched, with no attempt to connect them
// to one another.
func generateRoom(g *grid.Grid, source *rng.Source) ([]string, error) {
	placement := source.Derive("placement")
	doors := source.Derive("doors")

	target := (g.Width * g.Height) / (minRoomW * minRoomH * 3)
	if target < 1 {
		target = 1
	}

	var rooms []rect
	attempts := 0
	for len(rooms) < target && attempts < roomMaxPlacementTries {
		attempts++

		wide := placement.Bool()
		long := placement.IntRange(3, maxRoomSize)
		shortMax := maxRoomSize
		if long < shortMax {
			shortMax = long
		}
		short := placement.IntRange(minRoomW, max(minRoomW, shortMax))

		var w, h int
		if wide {
			w, h = long, short
		} else {
			w, h = short, long
		}

		// g.Width-w-1 (resp. height) can fall below the lower bound 1 when
		// the sampled side is large relative to the map; IntRange panics on
		// lo > hi, so reject the candidate before sampling a position.
		maxX := g.Width - w - 1
		maxY := g.Height - h - 1
		if maxX < 1 || maxY < 1 {
			continue
		}

		x := placement.IntRange(1, maxX)
		y := placement.IntRange(1, maxY)
		candidate := rect{x: x, y: y, w: w, h: h}

		overlapped := false
		for _, r := range rooms {
			if candidate.overlaps(r, 1) {
				overlapped = true
				break
			}
		}
		if overlapped {
			continue
		}

		paintRoom(g, candidate)
		rooms = append(rooms, candidate)
	}

	for _, r := range rooms {
		addRoomDoors(g, r, doors)
	}

	var warnings []string
	if len(rooms) < target {
		warnings = append(warnings, PlacementExhaustedWarning(target, len(rooms)))
	}
	return warnings, nil
}

func paintRoom(g *grid.Grid, r rect) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			c := g.MustCellAt(x, y)
			c.SetEmpty(false)
			c.IsPassable = true
		}
	}
	g.ApplyBorderWalls()
}

// wallPosition is one candidate non-corner interior position on a room's
// perimeter, identified by the cell it belongs to and the direction its
// wall faces.
type wallPosition struct {
	x, y int
	dir  grid.Direction
}

func roomWallPositions(r rect) []wallPosition {
	var positions []wallPosition
	if r.w > 2 {
		for x := r.x + 1; x < r.x+r.w-1; x++ {
			positions = append(positions, wallPosition{x, r.y, grid.South})
			positions = append(positions, wallPosition{x, r.y + r.h - 1, grid.North})
		}
	}
	if r.h > 2 {
		for y := r.y + 1; y < r.y+r.h-1; y++ {
			positions = append(positions, wallPosition{r.x, y, grid.West})
			positions = append(positions, wallPosition{r.x + r.w - 1, y, grid.East})
		}
	}
	return positions
}

// addRoomDoors places at least one door on a randomly chosen wall-interior
// position, then keeps adding more with geometrically decaying probability
// until a draw fails or candidates run out. An extra door is skipped when
// another door facing the same way sits within minDoorSpacing cells on the
// same wall line.
func addRoomDoors(g *grid.Grid, r rect, source *rng.Source) {
	candidates := roomWallPositions(r)
	if len(candidates) == 0 {
		return
	}
	source.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	placed := 0
	for i, pos := range candidates {
		if i > 0 {
			chance := additionalDoorChance
			for k := 1; k < placed; k++ {
				chance *= additionalDoorChance
			}
			if !source.Chance(chance) {
				break
			}
		}
		if placed > 0 && !doorSpacingOK(g, pos.x, pos.y, pos.dir, minDoorSpacing) {
			continue
		}
		c := g.MustCellAt(pos.x, pos.y)
		c.SetDoor(pos.dir, true)
		placed++
	}
}
