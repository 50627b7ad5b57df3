package validation

import (
	"strings"
	"testing"

	"github.com/dshills/dungeonwalk/pkg/grid"
	"github.com/dshills/dungeonwalk/pkg/mapgen"
)

func generated(t *testing.T, kind mapgen.Kind, seed uint64) *grid.Grid {
	t.Helper()
	res, err := mapgen.Generate(mapgen.Params{
		Width: 30, Height: 30, Seed: &seed, Kind: kind, MinRooms: 4, MaxRooms: 7,
	})
	if err != nil {
		t.Fatalf("mapgen.Generate: %v", err)
	}
	return res.Grid
}

func TestValidate_NilGrid(t *testing.T) {
	if _, err := Validate(nil); err != ErrNilGrid {
		t.Fatalf("err = %v, want ErrNilGrid", err)
	}
}

func TestValidate_GeneratedMapsPass(t *testing.T) {
	// The room packer deliberately leaves its rooms unconnected, so only
	// the passage and random-walk generators are expected to clear every
	// check including connectivity.
	for _, kind := range []mapgen.Kind{mapgen.KindPassage, mapgen.KindWalk} {
		t.Run(kind.String(), func(t *testing.T) {
			g := generated(t, kind, 7)
			report, err := Validate(g)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !report.Passed {
				t.Fatalf("report failed: %v", report.Errors())
			}
			if report.FailureCount() != 0 {
				t.Fatalf("FailureCount = %d, want 0", report.FailureCount())
			}
		})
	}
}

func TestValidate_RoomPackerPassesEverythingButConnectivity(t *testing.T) {
	g := generated(t, mapgen.KindRoom, 7)
	report, err := Validate(g)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for _, res := range report.Results {
		if res.Name == "Connectivity" {
			continue
		}
		if !res.Passed {
			t.Fatalf("unexpected failure on %s: %s", res.Name, res.Details)
		}
	}
}

func TestValidate_CatchesBrokenDoor(t *testing.T) {
	g := grid.NewGrid(10, 10)
	g.ApplyBorderWalls()
	c := g.MustCellAt(5, 5)
	c.IsEmpty = false
	c.IsPassable = true
	c.SetDoor(grid.North, true)
	c.SetWall(grid.North, false) // force a door with no matching wall

	report, err := Validate(g)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Passed {
		t.Fatal("expected report to fail on a door without a wall")
	}
	found := false
	for _, res := range report.Results {
		if res.Name == "DoorImpliesWall" && !res.Passed {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DoorImpliesWall failure, got %v", report.Errors())
	}
}

func TestValidate_CatchesDisconnectedRegions(t *testing.T) {
	g := grid.NewGrid(10, 10)
	for _, pt := range [][2]int{{1, 1}, {8, 8}} {
		c := g.MustCellAt(pt[0], pt[1])
		c.IsEmpty = false
		c.IsPassable = true
	}
	g.ApplyBorderWalls()

	report, err := Validate(g)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Passed {
		t.Fatal("expected report to fail on disconnected passable cells")
	}
}

func TestCheckDoorSpacing_RejectsAdjacentDoors(t *testing.T) {
	g := grid.NewGrid(10, 10)
	for x := 0; x < 10; x++ {
		c := g.MustCellAt(x, 4)
		c.IsEmpty = false
		c.IsPassable = true
	}
	g.ApplyBorderWalls()
	a, b := g.MustCellAt(4, 4), g.MustCellAt(5, 4)
	a.SetDoor(grid.North, true)
	b.SetDoor(grid.North, true)

	ok, details := CheckDoorSpacing(g, MinDoorSpacing)
	if ok {
		t.Fatal("expected adjacent doors on the same wall to fail spacing check")
	}
	if !strings.Contains(details, "apart") {
		t.Fatalf("details = %q, want mention of spacing", details)
	}
}

func TestSummary_ReportsFailures(t *testing.T) {
	report := &Report{
		Passed: false,
		Results: []CheckResult{
			{Name: "BorderWalls", Passed: false, Details: "missing wall"},
			{Name: "Connectivity", Passed: true, Details: "all connected"},
		},
	}
	out := Summary(report)
	if !strings.Contains(out, "FAILED") || !strings.Contains(out, "BorderWalls") {
		t.Fatalf("summary missing expected content: %s", out)
	}
}

func TestReportJSONRoundTrip(t *testing.T) {
	g := generated(t, mapgen.KindPassage, 3)
	report, err := Validate(g)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	data, err := ExportReportJSON(report)
	if err != nil {
		t.Fatalf("ExportReportJSON: %v", err)
	}
	if !strings.Contains(string(data), `"Passed"`) {
		t.Fatalf("exported JSON missing Passed field: %s", data)
	}
}
