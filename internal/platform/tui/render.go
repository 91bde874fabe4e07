package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/games/tetris"
	"github.com/vovakirdan/termtris/internal/games/tetris/engine"
)

// baseColors are the terminal colors used for each screen color before the
// palette is applied.
var baseColors = []struct {
	color core.Color
	code  string
}{
	{core.ColorRed, "1"},
	{core.ColorGreen, "2"},
	{core.ColorYellow, "3"},
	{core.ColorBlue, "4"},
	{core.ColorMagenta, "5"},
	{core.ColorCyan, "6"},
	{core.ColorWhite, "7"},
	{core.ColorBrightRed, "9"},
	{core.ColorBrightYellow, "11"},
	{core.ColorBrightWhite, "15"},
	{core.ColorGray, "245"},
}

// Styles maps screen colors to lipgloss styles.
type Styles struct {
	byColor *intmap.Map[core.Color, lipgloss.Style]
	plain   lipgloss.Style
}

// NewStyles builds the style table. Each shape's screen color is drawn with
// the palette entry for that shape.
func NewStyles(p config.PaletteConfig) *Styles {
	s := &Styles{
		byColor: intmap.New[core.Color, lipgloss.Style](len(baseColors)),
		plain:   lipgloss.NewStyle(),
	}
	for _, bc := range baseColors {
		s.byColor.Put(bc.color, foreground(bc.code))
	}
	for _, shape := range engine.Shapes {
		if code := p.ForShape(shape.Letter()); code != "" {
			s.byColor.Put(tetris.ScreenColor(shape.Color()), foreground(code))
		}
	}
	return s
}

func foreground(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// Style returns the style for c, or an unstyled one for unknown colors.
func (s *Styles) Style(c core.Color) lipgloss.Style {
	if style, ok := s.byColor.Get(c); ok {
		return style
	}
	return s.plain
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (s *Styles) RenderScreen(scr *core.Screen) string {
	var sb strings.Builder
	sb.Grow(scr.Width()*scr.Height()*2 + scr.Height())

	var run strings.Builder
	for y, h := 0, scr.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < scr.Width() {
			startColor := scr.GetCell(x, y).Color

			run.Reset()
			for x < scr.Width() {
				cell := scr.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if startColor == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(s.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
