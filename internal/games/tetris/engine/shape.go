package engine

// Color is the tag stored in settled grid cells and carried by each shape.
type Color uint8

// Shape colors. ColorNone marks an empty cell.
const (
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	default:
		return "unknown"
	}
}

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	ShapeI Shape = iota
	ShapeO
	ShapeS
	ShapeZ
	ShapeL
	ShapeJ
	ShapeT
)

// ShapeCount is the number of shapes the randomizer picks from.
const ShapeCount = 7

// Shapes lists every shape in declaration order.
var Shapes = [ShapeCount]Shape{ShapeI, ShapeO, ShapeS, ShapeZ, ShapeL, ShapeJ, ShapeT}

// Orientation is a rotation state index. Valid values are 0..Cycle()-1.
type Orientation uint8

// shapeDef is a row of the rotation table.
// Each orientation lists four cell offsets from the piece origin with a
// minimum X offset of 0, so rotating about the origin never crosses the left edge.
type shapeDef struct {
	letter       byte
	color        Color
	orientations [][4]Point
}

var shapeDefs = [ShapeCount]shapeDef{
	ShapeI: {
		letter: 'I',
		color:  ColorGreen,
		orientations: [][4]Point{
			{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
			{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		},
	},
	ShapeO: {
		letter: 'O',
		color:  ColorBlue,
		orientations: [][4]Point{
			{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		},
	},
	ShapeS: {
		letter: 'S',
		color:  ColorRed,
		orientations: [][4]Point{
			{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
			{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		},
	},
	ShapeZ: {
		letter: 'Z',
		color:  ColorYellow,
		orientations: [][4]Point{
			{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
			{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		},
	},
	ShapeL: {
		letter: 'L',
		color:  ColorMagenta,
		orientations: [][4]Point{
			{{0, 0}, {0, 1}, {0, 2}, {1, 2}},
			{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
			{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
			{{2, 1}, {0, 2}, {1, 2}, {2, 2}},
		},
	},
	ShapeJ: {
		letter: 'J',
		color:  ColorCyan,
		orientations: [][4]Point{
			{{0, 0}, {0, 1}, {0, 2}, {1, 0}},
			{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
			{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
			{{0, 1}, {0, 2}, {1, 2}, {2, 2}},
		},
	},
	ShapeT: {
		letter: 'T',
		color:  ColorWhite,
		orientations: [][4]Point{
			{{1, 0}, {1, 1}, {1, 2}, {0, 1}},
			{{1, 1}, {0, 2}, {1, 2}, {2, 2}},
			{{0, 0}, {0, 1}, {0, 2}, {1, 1}},
			{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		},
	},
}

// spawnOrigin is where every shape enters the board, in orientation 0.
var spawnOrigin = Point{X: 4, Y: 0}

// Color returns the shape's color tag.
func (s Shape) Color() Color {
	return shapeDefs[s].color
}

// Letter returns the conventional one-letter name of the shape.
func (s Shape) Letter() byte {
	return shapeDefs[s].letter
}

// String returns the shape letter.
func (s Shape) String() string {
	if int(s) >= ShapeCount {
		return "?"
	}
	return string(shapeDefs[s].letter)
}

// Cycle returns how many distinct orientations the shape has (1, 2 or 4).
func (s Shape) Cycle() int {
	return len(shapeDefs[s].orientations)
}

// offsets returns the cell offsets of the shape in orientation o.
func (s Shape) offsets(o Orientation) [4]Point {
	return shapeDefs[s].orientations[o]
}

// ShapeByColor returns the shape carrying color c.
func ShapeByColor(c Color) (Shape, bool) {
	for _, s := range Shapes {
		if shapeDefs[s].color == c {
			return s, true
		}
	}
	return 0, false
}
