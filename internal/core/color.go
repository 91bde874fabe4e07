package core

// Color is the foreground color tag of a screen cell.
// The platform maps tags to terminal colors; games never see escape codes.
type Color uint8

// Screen colors. The first eight match the ANSI base palette order.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightWhite
	ColorGray
)
