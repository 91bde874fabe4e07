package engine

import "strings"

// PieceView is a read-only description of a piece.
type PieceView struct {
	Shape Shape
	Color Color
	Cells [4]Point
}

func viewOf(p Piece) PieceView {
	return PieceView{Shape: p.Shape, Color: p.Color(), Cells: p.Cells()}
}

// Snapshot is a copy of everything a renderer needs. It shares no memory with
// the engine.
type Snapshot struct {
	Grid     [Height][Width]Color
	Active   PieceView
	Next     PieceView
	Level    int
	Lines    int
	Score    int
	Phase    Phase
	GameOver bool
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Grid:     e.grid.Rows(),
		Active:   viewOf(e.active),
		Next:     viewOf(e.next),
		Level:    e.level,
		Lines:    e.lines,
		Score:    e.score,
		Phase:    e.Phase(),
		GameOver: e.IsOver(),
	}
}

// Dump renders the board as text, one line per row: '.' for empty cells, the
// shape letter for settled cells and '#' for the active piece.
func (e *Engine) Dump() string {
	var b strings.Builder
	b.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			p := Point{X: x, Y: y}
			switch {
			case !e.IsOver() && e.active.Occupies(p):
				b.WriteByte('#')
			case e.grid.At(p) == ColorNone:
				b.WriteByte('.')
			default:
				b.WriteByte(cellLetter(e.grid.At(p)))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellLetter(c Color) byte {
	if s, ok := ShapeByColor(c); ok {
		return s.Letter()
	}
	return '?'
}
