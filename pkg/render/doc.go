// Package render draws a grid.Grid as ASCII art: three columns by two rows
// per cell, glyph selection driven entirely by a cell's wall and door
// flags, printed from high-y to low-y so north appears at the top.
package render
