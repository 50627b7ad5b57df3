package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/dungeonwalk/pkg/grid"
)

// SVGOptions configures the grid's SVG visualization.
type SVGOptions struct {
	CellSize   int    // Pixel size of one grid cell (default: 24)
	Margin     int    // Canvas margin in pixels (default: 20)
	ShowDoors  bool   // Highlight door segments
	FloorColor string // Fill color for non-empty cells
	WallColor  string // Stroke color for walls
	DoorColor  string // Stroke color for doors
	Title      string // Optional title drawn above the grid
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		CellSize:   24,
		Margin:     20,
		ShowDoors:  true,
		FloorColor: "#e8e4d8",
		WallColor:  "#2b2b2b",
		DoorColor:  "#8b5a2b",
		Title:      "",
	}
}

// ExportSVG renders a grid as an SVG floor plan: one rect per non-empty
// cell, wall segments as thick lines on the cell edges that carry them,
// door segments highlighted in a different color.
func ExportSVG(g *grid.Grid, opts SVGOptions) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("export: grid is nil")
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 24
	}
	if opts.Margin <= 0 {
		opts.Margin = 20
	}
	if opts.FloorColor == "" {
		opts.FloorColor = "#e8e4d8"
	}
	if opts.WallColor == "" {
		opts.WallColor = "#2b2b2b"
	}
	if opts.DoorColor == "" {
		opts.DoorColor = "#8b5a2b"
	}

	headerHeight := 0
	if opts.Title != "" {
		headerHeight = 30
	}
	width := g.Width*opts.CellSize + 2*opts.Margin
	height := g.Height*opts.CellSize + 2*opts.Margin + headerHeight

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#ffffff")

	if opts.Title != "" {
		canvas.Text(width/2, 20, opts.Title, "text-anchor:middle;font-size:16px;font-family:sans-serif")
	}

	// The SVG canvas grows downward but the grid's y axis points north, so
	// row 0 (south) is drawn at the bottom.
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.MustCellAt(x, y)
			if c.IsEmpty {
				continue
			}
			px := opts.Margin + x*opts.CellSize
			py := opts.Margin + headerHeight + (g.Height-1-y)*opts.CellSize

			canvas.Rect(px, py, opts.CellSize, opts.CellSize, fmt.Sprintf("fill:%s", opts.FloorColor))
			drawCellEdges(canvas, c, px, py, opts)
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}

func drawCellEdges(canvas *svg.SVG, c *grid.Cell, px, py int, opts SVGOptions) {
	size := opts.CellSize
	edge := func(d grid.Direction, hasWall, hasDoor bool) {
		if !hasWall {
			return
		}
		color := opts.WallColor
		if opts.ShowDoors && hasDoor {
			color = opts.DoorColor
		}
		style := fmt.Sprintf("stroke:%s;stroke-width:3", color)
		switch d {
		case grid.North:
			canvas.Line(px, py, px+size, py, style)
		case grid.South:
			canvas.Line(px, py+size, px+size, py+size, style)
		case grid.East:
			canvas.Line(px+size, py, px+size, py+size, style)
		case grid.West:
			canvas.Line(px, py, px, py+size, style)
		}
	}
	edge(grid.North, c.HasWall(grid.North), c.HasDoor(grid.North))
	edge(grid.South, c.HasWall(grid.South), c.HasDoor(grid.South))
	edge(grid.East, c.HasWall(grid.East), c.HasDoor(grid.East))
	edge(grid.West, c.HasWall(grid.West), c.HasDoor(grid.West))
}

// SaveSVGToFile renders and writes a grid's SVG visualization to a file.
func SaveSVGToFile(g *grid.Grid, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(g, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
