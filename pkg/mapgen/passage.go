package mapgen

import (
	"github.com/dshills/dungeonwalk/pkg/grid"
	"github.com/dshills/dungeonwalk/pkg/rng"
)

const (
	passageOverlapBuffer     = 2
	passageRectMinSide       = 3
	passageRectMaxSide       = 8
	passageCircleMinRadius   = 2
	passageMaxPlacementTries = 200
)

// room is either a rectangle or a disc of floor cells, carved by the
// passage connector. Doors punched into it during connection are tracked so
// the spacing/coherence pass can reason about them, but the data model
// itself has no notion of "room" once carving is done - only cells.
type room struct {
	isCircle bool
	// rectangle form
	x, y, w, h int
	// circular form
	cx, cy, radius int
}

func (r room) bounds() rect {
	if r.isCircle {
		return rect{x: r.cx - r.radius, y: r.cy - r.radius, w: 2*r.radius + 1, h: 2*r.radius + 1}
	}
	return rect{x: r.x, y: r.y, w: r.w, h: r.h}
}

func (r room) center() (int, int) {
	if r.isCircle {
		return r.cx, r.cy
	}
	return r.x + r.w/2, r.y + r.h/2
}

func (r room) contains(x, y int) bool {
	if r.isCircle {
		dx, dy := float64(x-r.cx), float64(y-r.cy)
		return dx*dx+dy*dy <= float64(r.radius*r.radius)
	}
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// generatePassage implements the passage connector: independently sampled
// rooms (rectangular or circular), unioned into one connected component by
// a minimum-spanning pass, then thickened with a handful of extra passages.
func generatePassage(g *grid.Grid, source *rng.Source, minRooms, maxRooms int) ([]string, error) {
	placement := source.Derive("placement")
	connect := source.Derive("connect")

	target := placement.IntRange(minRooms, maxRooms)

	var rooms []room
	attempts := 0
	for len(rooms) < target && attempts < passageMaxPlacementTries {
		attempts++
		r, ok := sampleRoom(g, placement)
		if !ok {
			continue
		}
		overlapped := false
		for _, existing := range rooms {
			if r.bounds().overlaps(existing.bounds(), passageOverlapBuffer) {
				overlapped = true
				break
			}
		}
		if overlapped {
			continue
		}
		carveRoom(g, r)
		rooms = append(rooms, r)
	}

	if len(rooms) > 0 {
		connectRooms(g, rooms, connect)
	}

	g.NormalizeWalls()
	g.ApplyBorderWalls()

	var warnings []string
	if len(rooms) < minRooms {
		warnings = append(warnings, PlacementExhaustedWarning(target, len(rooms)))
	}
	return warnings, nil
}

func sampleRoom(g *grid.Grid, source *rng.Source) (room, bool) {
	maxRectSide := g.Width / 3
	if g.Height/3 < maxRectSide {
		maxRectSide = g.Height / 3
	}
	if maxRectSide > passageRectMaxSide {
		maxRectSide = passageRectMaxSide
	}
	if maxRectSide < passageRectMinSide {
		maxRectSide = passageRectMinSide
	}

	if source.Bool() {
		w := source.IntRange(passageRectMinSide, maxRectSide)
		h := source.IntRange(passageRectMinSide, maxRectSide)
		x := source.IntRange(1, g.Width-w-1)
		y := source.IntRange(1, g.Height-h-1)
		if x < 1 || y < 1 {
			return room{}, false
		}
		return room{x: x, y: y, w: w, h: h}, true
	}

	maxRadius := min(g.Width, g.Height) / 6
	if maxRadius < passageCircleMinRadius {
		maxRadius = passageCircleMinRadius
	}
	if maxRadius > 4 {
		maxRadius = 4
	}
	radius := source.IntRange(passageCircleMinRadius, maxRadius)
	cx := source.IntRange(radius+1, g.Width-radius-2)
	cy := source.IntRange(radius+1, g.Height-radius-2)
	if cx <= radius || cy <= radius {
		return room{}, false
	}
	return room{isCircle: true, cx: cx, cy: cy, radius: radius}, true
}

func carveRoom(g *grid.Grid, r room) {
	b := r.bounds()
	for y := b.y; y < b.y+b.h; y++ {
		for x := b.x; x < b.x+b.w; x++ {
			if !r.contains(x, y) {
				continue
			}
			c := g.MustCellAt(x, y)
			c.SetEmpty(false)
			c.IsPassable = true
		}
	}
	for y := b.y; y < b.y+b.h; y++ {
		for x := b.x; x < b.x+b.w; x++ {
			if !r.contains(x, y) {
				continue
			}
			c := g.MustCellAt(x, y)
			for _, d := range grid.Directions {
				dx, dy := d.Delta()
				nx, ny := x+dx, y+dy
				if !g.InBounds(nx, ny) || !r.contains(nx, ny) {
					c.SetWall(d, true)
				}
			}
		}
	}
}

// roomLinks records which room pairs already carry a direct passage, so the
// extra-passage pass can favor peers a room isn't already joined to.
type roomLinks map[[2]int]bool

func (l roomLinks) add(a, b int) {
	l[[2]int{a, b}] = true
	l[[2]int{b, a}] = true
}

func (l roomLinks) linked(a, b int) bool {
	return l[[2]int{a, b}]
}

// connectRooms unions all rooms with a greedy nearest-neighbour spanning
// pass, then adds a handful of extra passages for loops.
func connectRooms(g *grid.Grid, rooms []room, source *rng.Source) {
	links := roomLinks{}
	connected := []int{0}
	remaining := make([]int, 0, len(rooms)-1)
	for i := 1; i < len(rooms); i++ {
		remaining = append(remaining, i)
	}

	for len(remaining) > 0 {
		pick := source.Intn(len(remaining))
		from := remaining[pick]

		best := connected[0]
		bestDist := -1.0
		fx, fy := rooms[from].center()
		for _, c := range connected {
			cx, cy := rooms[c].center()
			d := euclidean(fx, fy, cx, cy)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = c
			}
		}

		carvePassage(g, rooms[from], rooms[best], source)
		links.add(from, best)
		connected = append(connected, from)
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}

	extra := 1
	if half := len(rooms) / 2; half > extra {
		extra = half
	}
	extraCount := source.IntRange(1, extra)
	for i := 0; i < extraCount && len(rooms) >= 2; i++ {
		a := source.Intn(len(rooms))
		b := nearestUnconnectedTo(rooms, a, links, source)
		carvePassage(g, rooms[a], rooms[b], source)
		links.add(a, b)
	}
}

// nearestUnconnectedTo returns the room closest to a, by centre, that a does
// not yet carry a direct passage to. It falls back to the nearest room
// overall if every other room is already linked to a.
func nearestUnconnectedTo(rooms []room, a int, links roomLinks, source *rng.Source) int {
	ax, ay := rooms[a].center()
	best, bestDist := -1, -1.0
	bestAny, bestAnyDist := -1, -1.0
	for i, r := range rooms {
		if i == a {
			continue
		}
		x, y := r.center()
		d := euclidean(ax, ay, x, y)
		if bestAnyDist < 0 || d < bestAnyDist {
			bestAnyDist = d
			bestAny = i
		}
		if links.linked(a, i) {
			continue
		}
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best >= 0 {
		return best
	}
	if bestAny >= 0 {
		return bestAny
	}
	return source.Intn(len(rooms))
}

func euclidean(x1, y1, x2, y2 int) float64 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return dx*dx + dy*dy
}

// carvePassage lays a straight, T-shaped, or X-shaped corridor between two
// room centres, chosen uniformly, then punches doors where the corridor
// crosses each room's boundary.
func carvePassage(g *grid.Grid, from, to room, source *rng.Source) {
	x1, y1 := from.center()
	x2, y2 := to.center()

	path := append(tracePath(x1, y1, x2, y1), tracePath(x2, y1, x2, y2)...)

	carveLine(g, x1, y1, x2, y1)
	carveLine(g, x2, y1, x2, y2)

	switch source.Intn(3) {
	case 1: // T-shaped
		mx, my := midpoint(path)
		carveStub(g, mx, my, source)
	case 2: // X-shaped
		mx, my := midpoint(path)
		carveStub(g, mx, my, source)
		carveStub(g, mx, my, source)
	}

	punchDoorAtBoundary(g, from, path)
	punchDoorAtBoundary(g, to, path)
}

// tracePath returns the ordered cells a straight horizontal or vertical
// segment from (x1,y1) to (x2,y2) passes through; carvePassage joins two of
// them into an L. At least one of x1==x2 or y1==y2 holds.
func tracePath(x1, y1, x2, y2 int) []point {
	var pts []point
	if x1 == x2 {
		step := 1
		if y2 < y1 {
			step = -1
		}
		for y := y1; ; y += step {
			pts = append(pts, point{x1, y})
			if y == y2 {
				break
			}
		}
		return pts
	}
	step := 1
	if x2 < x1 {
		step = -1
	}
	for x := x1; ; x += step {
		pts = append(pts, point{x, y1})
		if x == x2 {
			break
		}
	}
	return pts
}

// midpoint returns the middle cell of a traced corridor path, so a stub
// carved from it joins the corridor.
func midpoint(path []point) (int, int) {
	m := path[len(path)/2]
	return m.x, m.y
}

func carveStub(g *grid.Grid, x, y int, source *rng.Source) {
	length := source.IntRange(3, 6)
	dir := grid.Directions[source.Intn(4)]
	cx, cy := x, y
	for i := 0; i < length; i++ {
		dx, dy := dir.Delta()
		cx, cy = cx+dx, cy+dy
		if !g.InBounds(cx, cy) {
			break
		}
		carveCorridorCell(g, cx, cy)
	}
}

func carveLine(g *grid.Grid, x1, y1, x2, y2 int) {
	for _, p := range tracePath(x1, y1, x2, y2) {
		carveCorridorCell(g, p.x, p.y)
	}
}

// carveCorridorCell marks one passage cell floor-passable and sets walls
// toward every neighbour that is still empty at this moment. A neighbour
// carved later is not back-patched here; Grid.NormalizeWalls resolves that
// once the whole map is built.
func carveCorridorCell(g *grid.Grid, x, y int) {
	c, ok := g.CellAt(x, y)
	if !ok {
		return
	}
	if !c.IsEmpty {
		return
	}
	c.SetEmpty(false)
	c.IsPassable = true
	for _, d := range grid.Directions {
		neighbor, _, _, ok := g.Neighbor(x, y, d)
		if !ok || neighbor.IsEmpty {
			c.SetWall(d, true)
		}
	}
}

// punchDoorAtBoundary finds where path crosses r's boundary and replaces
// the room-edge wall facing the corridor with a door.
func punchDoorAtBoundary(g *grid.Grid, r room, path []point) {
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		aIn, bIn := r.contains(a.x, a.y), r.contains(b.x, b.y)
		if aIn == bIn {
			continue
		}
		inside, outside := a, b
		if bIn {
			inside, outside = b, a
		}
		dir, ok := directionBetween(inside, outside)
		if !ok {
			continue
		}
		c := g.MustCellAt(inside.x, inside.y)
		if c.HasWall(dir) {
			c.SetDoor(dir, true)
		}
		return
	}
}

// directionBetween returns the cardinal direction that steps from a to b,
// and false if a and b are not unit-adjacent along one axis.
func directionBetween(a, b point) (grid.Direction, bool) {
	for _, d := range grid.Directions {
		dx, dy := d.Delta()
		if a.x+dx == b.x && a.y+dy == b.y {
			return d, true
		}
	}
	return 0, false
}
