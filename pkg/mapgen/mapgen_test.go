package mapgen

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/dungeonwalk/pkg/grid"
)

func seedPtr(s uint64) *uint64 { return &s }

func TestGenerate_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"too narrow", Params{Width: 5, Height: 20, Kind: KindPassage, MinRooms: 1, MaxRooms: 1}},
		{"too short", Params{Width: 20, Height: 5, Kind: KindPassage, MinRooms: 1, MaxRooms: 1}},
		{"too wide", Params{Width: 200, Height: 20, Kind: KindPassage, MinRooms: 1, MaxRooms: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.p)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Fatalf("got err %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestGenerate_InvalidParameters(t *testing.T) {
	_, err := Generate(Params{Width: 20, Height: 20, Kind: KindPassage, MinRooms: 5, MaxRooms: 2})
	if !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("got err %v, want ErrInvalidParameters", err)
	}
}

func TestGenerate_Determinism(t *testing.T) {
	kinds := []Kind{KindRoom, KindPassage, KindWalk}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			p := Params{Width: 30, Height: 30, Seed: seedPtr(42), Kind: kind, MinRooms: 5, MaxRooms: 8}
			r1, err := Generate(p)
			if err != nil {
				t.Fatalf("first run: %v", err)
			}
			r2, err := Generate(p)
			if err != nil {
				t.Fatalf("second run: %v", err)
			}
			assertGridsEqual(t, r1.Grid, r2.Grid)
		})
	}
}

func assertGridsEqual(t *testing.T, a, b *grid.Grid) {
	t.Helper()
	if a.Width != b.Width || a.Height != b.Height {
		t.Fatalf("dimensions differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	ca, cb := a.Cells(), b.Cells()
	for i := range ca {
		if !reflect.DeepEqual(ca[i], cb[i]) {
			t.Fatalf("cell %d differs: %+v vs %+v", i, ca[i], cb[i])
		}
	}
}

func TestGenerate_BilateralWallAndDoorConsistency(t *testing.T) {
	for _, kind := range []Kind{KindRoom, KindPassage, KindWalk} {
		t.Run(kind.String(), func(t *testing.T) {
			res, err := Generate(Params{Width: 30, Height: 30, Seed: seedPtr(7), Kind: kind, MinRooms: 4, MaxRooms: 6})
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			checkBilateralConsistency(t, res.Grid)
			checkDoorImpliesWall(t, res.Grid)
			checkPassableFloor(t, res.Grid)
			checkBorderWalls(t, res.Grid)
		})
	}
}

func checkBilateralConsistency(t *testing.T, g *grid.Grid) {
	t.Helper()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.MustCellAt(x, y)
			if c.IsEmpty {
				continue
			}
			for _, d := range [2]grid.Direction{grid.North, grid.East} {
				n, _, _, ok := g.Neighbor(x, y, d)
				if !ok || n.IsEmpty {
					continue
				}
				if c.HasWall(d) != n.HasWall(d.Opposite()) {
					t.Fatalf("wall mismatch at (%d,%d) facing %v: %v vs %v", x, y, d, c.HasWall(d), n.HasWall(d.Opposite()))
				}
				if c.HasDoor(d) != n.HasDoor(d.Opposite()) {
					t.Fatalf("door mismatch at (%d,%d) facing %v: %v vs %v", x, y, d, c.HasDoor(d), n.HasDoor(d.Opposite()))
				}
			}
		}
	}
}

func checkDoorImpliesWall(t *testing.T, g *grid.Grid) {
	t.Helper()
	for _, c := range g.Cells() {
		c := c
		for _, d := range grid.Directions {
			if c.HasDoor(d) && !c.HasWall(d) {
				t.Fatalf("door without wall on direction %v", d)
			}
		}
	}
}

func checkPassableFloor(t *testing.T, g *grid.Grid) {
	t.Helper()
	for _, c := range g.Cells() {
		if c.IsPassable && c.IsEmpty {
			t.Fatal("passable cell is marked empty")
		}
	}
}

func checkBorderWalls(t *testing.T, g *grid.Grid) {
	t.Helper()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.MustCellAt(x, y)
			if c.IsEmpty {
				continue
			}
			for _, d := range grid.Directions {
				n, _, _, ok := g.Neighbor(x, y, d)
				if (!ok || n.IsEmpty) && !c.HasWall(d) {
					t.Fatalf("missing border wall at (%d,%d) facing %v", x, y, d)
				}
			}
		}
	}
}

func TestGenerateRoom_NonOverlapAndDoors(t *testing.T) {
	res, err := Generate(Params{Width: 20, Height: 20, Seed: seedPtr(7), Kind: KindRoom})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(res.Grid.Cells()) != 20*20 {
		t.Fatalf("cell count = %d, want 400", len(res.Grid.Cells()))
	}
	rooms := passableComponents(res.Grid)
	if len(rooms) == 0 {
		t.Fatal("no rooms placed")
	}
	for i, a := range rooms {
		if !a.hasDoor {
			t.Errorf("room %d at %+v has no door", i, a.box)
		}
		for j := i + 1; j < len(rooms); j++ {
			if a.box.overlaps(rooms[j].box, 1) {
				t.Errorf("rooms %d %+v and %d %+v overlap with 1-cell padding", i, a.box, j, rooms[j].box)
			}
		}
	}
}

type roomComponent struct {
	box     rect
	hasDoor bool
}

// passableComponents groups edge-adjacent passable cells into components and
// returns each one's bounding box and whether any of its cells has a door.
func passableComponents(g *grid.Grid) []roomComponent {
	cells := g.Cells()
	seen := make([]bool, len(cells))
	var out []roomComponent
	for start, c := range cells {
		if !c.IsPassable || seen[start] {
			continue
		}
		minX, minY, maxX, maxY := g.Width, g.Height, -1, -1
		var comp roomComponent
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%g.Width, i/g.Width
			minX, minY, maxX, maxY = min(minX, x), min(minY, y), max(maxX, x), max(maxY, y)
			for _, d := range grid.Directions {
				if cells[i].HasDoor(d) {
					comp.hasDoor = true
				}
				n, nx, ny, ok := g.Neighbor(x, y, d)
				if !ok || !n.IsPassable {
					continue
				}
				if ni := ny*g.Width + nx; !seen[ni] {
					seen[ni] = true
					stack = append(stack, ni)
				}
			}
		}
		comp.box = rect{x: minX, y: minY, w: maxX - minX + 1, h: maxY - minY + 1}
		out = append(out, comp)
	}
	return out
}

func TestGeneratePassage_Connectivity(t *testing.T) {
	res, err := Generate(Params{Width: 30, Height: 30, Seed: seedPtr(42), Kind: KindPassage, MinRooms: 5, MaxRooms: 8})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	passableCount := 0
	for _, c := range res.Grid.Cells() {
		if c.IsPassable {
			passableCount++
		}
	}
	if passableCount == 0 {
		t.Fatal("no passable cells produced")
	}
	if !allPassableConnected(res.Grid) {
		t.Fatal("passable cells are not all in one connected component")
	}
}

func allPassableConnected(g *grid.Grid) bool {
	var start *int
	cells := g.Cells()
	for i, c := range cells {
		if c.IsPassable {
			idx := i
			start = &idx
			break
		}
	}
	if start == nil {
		return true
	}

	visited := make([]bool, len(cells))
	stack := []int{*start}
	visited[*start] = true
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

	total := 0
	for _, c := range cells {
		if c.IsPassable {
			total++
		}
	}
	return visitedCount == total
}

func TestGenerateWalk_AnchorRoomCentered(t *testing.T) {
	res, err := Generate(Params{Width: 25, Height: 25, Seed: seedPtr(123), Kind: KindWalk})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	cx, cy := 25/2, 25/2
	c := res.Grid.MustCellAt(cx, cy)
	if c.IsEmpty || !c.IsPassable {
		t.Fatalf("anchor centre (%d,%d) is not carved floor", cx, cy)
	}
	for _, d := range grid.Directions {
		n, nx, ny, ok := res.Grid.Neighbor(cx, cy, d)
		if !ok || n.IsEmpty {
			t.Fatalf("anchor neighbour (%d,%d) facing %v is empty", nx, ny, d)
		}
	}
}

func TestGenerateWalk_Deterministic(t *testing.T) {
	p := Params{Width: 25, Height: 25, Seed: seedPtr(123), Kind: KindWalk}
	r1, err := Generate(p)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	r2, err := Generate(p)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	assertGridsEqual(t, r1.Grid, r2.Grid)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		err  bool
	}{
		{"", KindPassage, false},
		{"passage", KindPassage, false},
		{"room", KindRoom, false},
		{"walk", KindWalk, false},
		{"bogus", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.err {
			if !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("ParseKind(%q) err = %v, want ErrInvalidParameters", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
