package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dshills/dungeonwalk/pkg/grid"
	"github.com/dshills/dungeonwalk/pkg/mapgen"
)

// MapJSON is the wire representation of a grid.Grid. Field names are part
// of the wire contract shared with the viewer and must not be renamed.
type MapJSON struct {
	Width      int               `json:"Width"`
	Height     int               `json:"Height"`
	MapName    string            `json:"MapName"`
	FloorLevel int               `json:"FloorLevel"`
	Metadata   map[string]string `json:"Metadata"`
	Cells      []CellData        `json:"Cells"`
}

// CellData is the wire representation of a single grid.Cell.
type CellData struct {
	IsEmpty      bool              `json:"IsEmpty"`
	IsPassable   bool              `json:"IsPassable"`
	HasNorthWall bool              `json:"HasNorthWall"`
	HasEastWall  bool              `json:"HasEastWall"`
	HasSouthWall bool              `json:"HasSouthWall"`
	HasWestWall  bool              `json:"HasWestWall"`
	HasNorthDoor bool              `json:"HasNorthDoor"`
	HasEastDoor  bool              `json:"HasEastDoor"`
	HasSouthDoor bool              `json:"HasSouthDoor"`
	HasWestDoor  bool              `json:"HasWestDoor"`
	CellType     string            `json:"CellType"`
	Properties   map[string]string `json:"Properties"`
}

// ToMapJSON converts a grid into its wire form. Cell order is row-major
// with index = y*Width + x, matching the grid's own backing layout.
func ToMapJSON(g *grid.Grid) MapJSON {
	cells := make([]CellData, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.MustCellAt(x, y)
			cells[y*g.Width+x] = CellData{
				IsEmpty:      c.IsEmpty,
				IsPassable:   c.IsPassable,
				HasNorthWall: c.HasWall(grid.North),
				HasEastWall:  c.HasWall(grid.East),
				HasSouthWall: c.HasWall(grid.South),
				HasWestWall:  c.HasWall(grid.West),
				HasNorthDoor: c.HasDoor(grid.North),
				HasEastDoor:  c.HasDoor(grid.East),
				HasSouthDoor: c.HasDoor(grid.South),
				HasWestDoor:  c.HasDoor(grid.West),
				CellType:     c.CellType,
				Properties:   c.Properties,
			}
		}
	}
	return MapJSON{
		Width:      g.Width,
		Height:     g.Height,
		MapName:    g.Name,
		FloorLevel: g.FloorLevel,
		Metadata:   g.Metadata,
		Cells:      cells,
	}
}

// FromMapJSON rebuilds a grid from its wire form.
func FromMapJSON(m MapJSON) (*grid.Grid, error) {
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("%w: width/height must be positive", mapgen.ErrInvalidMap)
	}
	if len(m.Cells) != m.Width*m.Height {
		return nil, fmt.Errorf("%w: cells length %d, want %d", mapgen.ErrInvalidMap, len(m.Cells), m.Width*m.Height)
	}

	g := grid.NewGrid(m.Width, m.Height)
	g.Name = m.MapName
	g.FloorLevel = m.FloorLevel
	g.Metadata = m.Metadata

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			cd := m.Cells[y*m.Width+x]
			c := g.MustCellAt(x, y)
			c.SetEmpty(cd.IsEmpty)
			c.IsPassable = cd.IsPassable
			c.SetWall(grid.North, cd.HasNorthWall)
			c.SetWall(grid.East, cd.HasEastWall)
			c.SetWall(grid.South, cd.HasSouthWall)
			c.SetWall(grid.West, cd.HasWestWall)
			c.SetDoor(grid.North, cd.HasNorthDoor)
			c.SetDoor(grid.East, cd.HasEastDoor)
			c.SetDoor(grid.South, cd.HasSouthDoor)
			c.SetDoor(grid.West, cd.HasWestDoor)
			c.CellType = cd.CellType
			c.Properties = cd.Properties
		}
	}
	return g, nil
}

// EncodeJSON serializes a grid to indented JSON, matching the wire
// contract's field names.
func EncodeJSON(g *grid.Grid) ([]byte, error) {
	data, err := json.MarshalIndent(ToMapJSON(g), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mapgen.ErrSerialization, err)
	}
	return data, nil
}

// EncodeJSONCompact serializes a grid to compact JSON, suitable for the
// serving collaborator's wire envelope.
func EncodeJSONCompact(g *grid.Grid) ([]byte, error) {
	data, err := json.Marshal(ToMapJSON(g))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mapgen.ErrSerialization, err)
	}
	return data, nil
}

// DecodeJSON parses a wire-format map back into a grid.
func DecodeJSON(data []byte) (*grid.Grid, error) {
	var m MapJSON
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", mapgen.ErrSerialization, err)
	}
	return FromMapJSON(m)
}

// SaveJSONToFile exports a grid to a JSON file with indentation.
func SaveJSONToFile(g *grid.Grid, filepath string) error {
	data, err := EncodeJSON(g)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
