// Package engine implements the falling-block rules: pieces, the board grid,
// legality checks, settling, line clearing and scoring.
// It is UI-agnostic, performs no I/O and no timing, and is deterministic for a
// given random source.
package engine

import "fmt"

// Board geometry. Fixed by the rules.
const (
	Width  = 10
	Height = 20
)

// Point is a cell coordinate. X grows to the right, Y grows downward.
type Point struct {
	X int
	Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// InBounds reports whether the point lies on the board.
func (p Point) InBounds() bool {
	return p.X >= 0 && p.X < Width && p.Y >= 0 && p.Y < Height
}

// Grid is the settled-cell matrix.
// Cells are stored in row-major order: index = y*Width + x.
// A zero Color means the cell is empty.
type Grid struct {
	cells [Width * Height]Color
}

// index converts a point to a flat array index.
func index(p Point) int {
	return p.Y*Width + p.X
}

// At returns the color at p. Out-of-bounds points read as empty.
func (g *Grid) At(p Point) Color {
	if !p.InBounds() {
		return ColorNone
	}
	return g.cells[index(p)]
}

// Set stores a color at p. Out-of-bounds points are ignored.
func (g *Grid) Set(p Point, c Color) {
	if p.InBounds() {
		g.cells[index(p)] = c
	}
}

// IsEmpty reports whether p is on the board and unoccupied.
func (g *Grid) IsEmpty(p Point) bool {
	return p.InBounds() && g.cells[index(p)] == ColorNone
}

// RowComplete reports whether every cell of row y is occupied.
func (g *Grid) RowComplete(y int) bool {
	for x := 0; x < Width; x++ {
		if g.cells[y*Width+x] == ColorNone {
			return false
		}
	}
	return true
}

// ClearRow empties row y.
func (g *Grid) ClearRow(y int) {
	for x := 0; x < Width; x++ {
		g.cells[y*Width+x] = ColorNone
	}
}

// CollapseAbove copies every row strictly above y one row down, starting with
// the row just above y and walking up to the top, then empties row 0.
func (g *Grid) CollapseAbove(y int) {
	for row := y - 1; row >= 0; row-- {
		copy(g.cells[(row+1)*Width:(row+2)*Width], g.cells[row*Width:(row+1)*Width])
	}
	g.ClearRow(0)
}

// ClearLines removes every complete row in a single top-to-bottom pass and
// returns how many rows were removed.
//
// The scan index never rewinds: rows that fall into not-yet-visited positions
// after a collapse are still checked later in the same pass.
func (g *Grid) ClearLines() int {
	cleared := 0
	for y := 0; y < Height; y++ {
		if g.RowComplete(y) {
			cleared++
			g.ClearRow(y)
			g.CollapseAbove(y)
		}
	}
	return cleared
}

// FilledCount returns the number of occupied cells.
func (g *Grid) FilledCount() int {
	n := 0
	for _, c := range g.cells {
		if c != ColorNone {
			n++
		}
	}
	return n
}

// Rows returns a copy of the grid as rows of colors, top row first.
func (g *Grid) Rows() [Height][Width]Color {
	var rows [Height][Width]Color
	for y := 0; y < Height; y++ {
		copy(rows[y][:], g.cells[y*Width:(y+1)*Width])
	}
	return rows
}

// Equal reports whether two grids hold the same cells.
func (g *Grid) Equal(other *Grid) bool {
	return g.cells == other.cells
}
