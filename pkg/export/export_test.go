package export

import (
	"reflect"
	"testing"

	"github.com/dshills/dungeonwalk/pkg/grid"
	"github.com/dshills/dungeonwalk/pkg/mapgen"
)

func generatedGrid(t *testing.T) *grid.Grid {
	t.Helper()
	seed := uint64(42)
	res, err := mapgen.Generate(mapgen.Params{
		Width: 20, Height: 20, Seed: &seed, Kind: mapgen.KindPassage, MinRooms: 3, MaxRooms: 5,
	})
	if err != nil {
		t.Fatalf("mapgen.Generate: %v", err)
	}
	res.Grid.Name = "test-map"
	res.Grid.FloorLevel = 1
	return res.Grid
}

func TestJSONRoundTrip(t *testing.T) {
	g := generatedGrid(t)

	data, err := EncodeJSON(g)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}

	g2, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}

	if g2.Width != g.Width || g2.Height != g.Height || g2.Name != g.Name || g2.FloorLevel != g.FloorLevel {
		t.Fatalf("round-tripped grid header differs: %+v vs %+v", g2, g)
	}

	ca, cb := g.Cells(), g2.Cells()
	if len(ca) != len(cb) {
		t.Fatalf("cell count differs: %d vs %d", len(ca), len(cb))
	}
	for i := range ca {
		if !reflect.DeepEqual(ca[i], cb[i]) {
			t.Fatalf("cell %d differs after round-trip: %+v vs %+v", i, ca[i], cb[i])
		}
	}
}

func TestDecodeJSON_InvalidMap(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"Width":5,"Height":5,"Cells":[]}`))
	if err == nil {
		t.Fatal("expected error for mismatched cell count")
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	_, err := DecodeJSON([]byte(`not json`))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestToMapJSON_FieldNames(t *testing.T) {
	g := generatedGrid(t)
	data, err := EncodeJSONCompact(g)
	if err != nil {
		t.Fatalf("EncodeJSONCompact: %v", err)
	}
	for _, field := range []string{`"Width"`, `"Height"`, `"MapName"`, `"FloorLevel"`, `"Cells"`, `"IsEmpty"`, `"IsPassable"`, `"HasNorthWall"`, `"HasEastDoor"`} {
		if !contains(string(data), field) {
			t.Errorf("encoded JSON missing wire field %s", field)
		}
	}
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

func TestExportSVG_ProducesWellFormedMarkup(t *testing.T) {
	g := generatedGrid(t)
	data, err := ExportSVG(g, DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("ExportSVG produced no output")
	}
	if !contains(string(data), "<svg") || !contains(string(data), "</svg>") {
		t.Fatal("ExportSVG output is not a well-formed SVG document")
	}
}

func TestExportSVG_NilGrid(t *testing.T) {
	if _, err := ExportSVG(nil, DefaultSVGOptions()); err == nil {
		t.Fatal("expected error for nil grid")
	}
}
