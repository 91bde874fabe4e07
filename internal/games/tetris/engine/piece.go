package engine

// Piece is a tetromino placed on the board.
// Its cells are the shape's offsets for the current orientation, translated
// by the origin. Pieces are plain values; copying one snapshots it.
type Piece struct {
	Shape  Shape
	Rot    Orientation
	Origin Point
}

// Spawn returns a piece of shape s at its entry position.
func Spawn(s Shape) Piece {
	return Piece{Shape: s, Origin: spawnOrigin}
}

// Cells returns the four occupied board coordinates.
func (p Piece) Cells() [4]Point {
	var cells [4]Point
	for i, off := range p.Shape.offsets(p.Rot) {
		cells[i] = Point{X: p.Origin.X + off.X, Y: p.Origin.Y + off.Y}
	}
	return cells
}

// Color returns the piece's color tag.
func (p Piece) Color() Color {
	return p.Shape.Color()
}

// Occupies reports whether one of the piece's cells is at q.
func (p Piece) Occupies(q Point) bool {
	for _, c := range p.Cells() {
		if c == q {
			return true
		}
	}
	return false
}

// bounds returns the min and max coordinates covered by the piece.
func (p Piece) bounds() (lo, hi Point) {
	cells := p.Cells()
	lo, hi = cells[0], cells[0]
	for _, c := range cells[1:] {
		lo.X = min(lo.X, c.X)
		lo.Y = min(lo.Y, c.Y)
		hi.X = max(hi.X, c.X)
		hi.Y = max(hi.Y, c.Y)
	}
	return lo, hi
}

// ShiftUp moves the piece one row up. It only undoes a validated ShiftDown,
// so it performs no bounds check.
func (p *Piece) ShiftUp() {
	p.Origin.Y--
}

// ShiftDown moves the piece one row down.
// It returns false, leaving the piece untouched, if a cell is already on the bottom row.
func (p *Piece) ShiftDown() bool {
	if _, hi := p.bounds(); hi.Y > Height-2 {
		return false
	}
	p.Origin.Y++
	return true
}

// ShiftRight moves the piece one column right unless a cell is on the last column.
func (p *Piece) ShiftRight() bool {
	if _, hi := p.bounds(); hi.X > Width-2 {
		return false
	}
	p.Origin.X++
	return true
}

// ShiftLeft moves the piece one column left unless a cell is on column 0.
func (p *Piece) ShiftLeft() bool {
	if lo, _ := p.bounds(); lo.X < 1 {
		return false
	}
	p.Origin.X--
	return true
}

// Rotate turns the piece 90 degrees clockwise about its origin.
//
// If the rotated silhouette sticks out past the right edge, the piece is moved
// left by the overflow. Left-edge and vertical overflow are not corrected; the
// engine's legality check rejects such rotations.
func (p *Piece) Rotate() {
	p.Rot = Orientation((int(p.Rot) + 1) % p.Shape.Cycle())
	if _, hi := p.bounds(); hi.X >= Width {
		p.Origin.X -= hi.X - (Width - 1)
	}
}

// Rotated returns a rotated copy of the piece.
func (p Piece) Rotated() Piece {
	p.Rotate()
	return p
}
