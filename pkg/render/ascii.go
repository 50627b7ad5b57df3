package render

import (
	"fmt"
	"strings"

	"github.com/gookit/color"

	"github.com/dshills/dungeonwalk/pkg/grid"
	"github.com/dshills/dungeonwalk/pkg/mapgen"
)

// Options controls ASCII rendering.
type Options struct {
	// Color enables ANSI coloring: dark-grey walls, brown doors, white floors.
	Color bool
}

var (
	wallStyle  = color.FgGray
	floorStyle = color.FgWhite
	doorStyle  = color.RGB(139, 90, 43)
)

// Render draws g as ASCII art: a 3-column by 2-row character block per
// cell, printed from high-y to low-y so the output reads with north at
// the top. It returns ErrInvalidMap if the grid's cells do not match its
// declared dimensions.
func Render(g *grid.Grid, opts Options) (string, error) {
	if g == nil || g.Width <= 0 || g.Height <= 0 {
		return "", fmt.Errorf("%w: width and height must be positive", mapgen.ErrInvalidMap)
	}
	if len(g.Cells()) != g.Width*g.Height {
		return "", fmt.Errorf("%w: cells length %d, want %d", mapgen.ErrInvalidMap, len(g.Cells()), g.Width*g.Height)
	}

	var sb strings.Builder
	for y := g.Height - 1; y >= 0; y-- {
		top, mid := renderRow(g, y, opts)
		sb.WriteString(top)
		sb.WriteByte('\n')
		sb.WriteString(mid)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func renderRow(g *grid.Grid, y int, opts Options) (string, string) {
	var top, mid strings.Builder
	for x := 0; x < g.Width; x++ {
		c := g.MustCellAt(x, y)
		tNW, tN, tNE := topGlyphs(c)
		mW, mC, mE := midGlyphs(c)

		top.WriteString(style(tNW, c.HasDoor(grid.North)||c.HasDoor(grid.West), opts))
		top.WriteString(style(tN, c.HasDoor(grid.North), opts))
		top.WriteString(style(tNE, c.HasDoor(grid.North)||c.HasDoor(grid.East), opts))

		mid.WriteString(style(mW, c.HasDoor(grid.West), opts))
		mid.WriteString(floorGlyph(mC, opts))
		mid.WriteString(style(mE, c.HasDoor(grid.East), opts))
	}
	return top.String(), mid.String()
}

// Door glyphs per spec: a horizontal door (north/south edge) renders as
// "═", a vertical door (east/west edge) as "║", distinguishing a door from
// a plain wall even with color disabled.
const (
	doorGlyphHorizontal = "═"
	doorGlyphVertical   = "║"
)

func topGlyphs(c *grid.Cell) (nw, n, ne string) {
	north, west, east := c.HasWall(grid.North), c.HasWall(grid.West), c.HasWall(grid.East)
	doorNorth, doorWest, doorEast := c.HasDoor(grid.North), c.HasDoor(grid.West), c.HasDoor(grid.East)

	switch {
	case north && west:
		nw = "┌"
	case west:
		nw = wallOrDoorGlyph(doorWest, doorGlyphVertical, "│")
	case north:
		nw = wallOrDoorGlyph(doorNorth, doorGlyphHorizontal, "─")
	default:
		nw = " "
	}

	n = wallOrDoorGlyph(doorNorth, doorGlyphHorizontal, "─")
	if !north {
		n = " "
	}

	switch {
	case north && east:
		ne = "┐"
	case east:
		ne = wallOrDoorGlyph(doorEast, doorGlyphVertical, "│")
	case north:
		ne = wallOrDoorGlyph(doorNorth, doorGlyphHorizontal, "─")
	default:
		ne = " "
	}
	return nw, n, ne
}

func midGlyphs(c *grid.Cell) (w, content, e string) {
	if c.HasWall(grid.West) {
		w = wallOrDoorGlyph(c.HasDoor(grid.West), doorGlyphVertical, "│")
	} else {
		w = " "
	}
	if c.HasWall(grid.East) {
		e = wallOrDoorGlyph(c.HasDoor(grid.East), doorGlyphVertical, "│")
	} else {
		e = " "
	}
	switch {
	case c.IsEmpty:
		content = " "
	case c.IsPassable:
		content = "·"
	default:
		content = " "
	}
	return w, content, e
}

func wallOrDoorGlyph(isDoor bool, doorGlyph, wallGlyph string) string {
	if isDoor {
		return doorGlyph
	}
	return wallGlyph
}

func style(glyph string, isDoor bool, opts Options) string {
	if !opts.Color || glyph == " " {
		return glyph
	}
	if isDoor {
		return doorStyle.Sprint(glyph)
	}
	return wallStyle.Sprint(glyph)
}

func floorGlyph(glyph string, opts Options) string {
	if !opts.Color || glyph == " " {
		return glyph
	}
	return floorStyle.Sprint(glyph)
}
