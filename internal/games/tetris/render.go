package tetris

import (
	"fmt"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/games/tetris/engine"
)

// Playfield layout. Each board cell is two screen columns wide so blocks look
// square in a terminal.
const (
	cellW      = 2
	boardW     = engine.Width*cellW + 2
	boardH     = engine.Height + 2
	panelW     = 14
	previewW   = 4*cellW + 2
	previewH   = 4 + 2
	MinScreenW = boardW + 1 + panelW
	MinScreenH = boardH
)

// cellColors maps engine color tags to screen colors.
var cellColors = [...]core.Color{
	engine.ColorNone:    core.ColorDefault,
	engine.ColorRed:     core.ColorRed,
	engine.ColorGreen:   core.ColorGreen,
	engine.ColorYellow:  core.ColorYellow,
	engine.ColorBlue:    core.ColorBlue,
	engine.ColorMagenta: core.ColorMagenta,
	engine.ColorCyan:    core.ColorCyan,
	engine.ColorWhite:   core.ColorWhite,
}

// ScreenColor returns the screen color used for an engine color tag.
func ScreenColor(c engine.Color) core.Color {
	if int(c) >= len(cellColors) {
		return core.ColorDefault
	}
	return cellColors[c]
}

// Render draws the playfield, the side panel and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		g.renderOverlay(dst, dst.Bounds(), "Window too small",
			fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	snap := g.eng.Snapshot()
	area := dst.Bounds().Centered(MinScreenW, MinScreenH)
	board := core.NewRect(area.X, area.Y, boardW, boardH)

	g.renderBoard(dst, board, snap)
	g.renderPanel(dst, board.Right()+1, board.Y, snap)

	switch {
	case snap.GameOver:
		g.renderOverlay(dst, board, "GAME OVER!", fmt.Sprintf("Score: %d", snap.Score))
	case g.celebrating > 0:
		g.renderOverlay(dst, board, "~=TETRIS=~", fmt.Sprintf("+%d", engine.LineClearBonus(4)))
	case g.paused:
		g.renderOverlay(dst, board, "PAUSED", "")
	}
}

// renderBoard draws the frame, the settled cells and the falling piece.
func (g *Game) renderBoard(dst *core.Screen, board core.Rect, snap engine.Snapshot) {
	dst.DrawBox(board, core.ColorGray)
	inner := board.Inset(1)

	for y, row := range snap.Grid {
		for x, c := range row {
			if c == engine.ColorNone {
				dst.DrawTextColor(inner.X+x*cellW, inner.Y+y, " .", core.ColorGray)
				continue
			}
			drawBlock(dst, inner.X+x*cellW, inner.Y+y, ScreenColor(c))
		}
	}

	if snap.GameOver {
		return
	}
	color := ScreenColor(snap.Active.Color)
	for _, p := range snap.Active.Cells {
		drawBlock(dst, inner.X+p.X*cellW, inner.Y+p.Y, color)
	}
}

// renderPanel draws the title, the next-piece preview and the statistics.
func (g *Game) renderPanel(dst *core.Screen, x, y int, snap engine.Snapshot) {
	dst.DrawTextColor(x, y, "TERMTRIS", core.ColorBrightWhite)

	dst.DrawTextColor(x, y+2, "NEXT", core.ColorBrightYellow)
	preview := core.NewRect(x, y+3, previewW, previewH)
	dst.DrawBox(preview, core.ColorGray)
	renderPreview(dst, preview.Inset(1), snap.Next)

	stats := []struct {
		label string
		value int
	}{
		{"Level", snap.Level + 1},
		{"Lines", snap.Lines},
		{"Score", snap.Score},
	}
	for i, s := range stats {
		row := preview.Bottom() + 1 + i*2
		dst.DrawTextColor(x, row, s.label, core.ColorGray)
		dst.DrawTextColor(x, row+1, fmt.Sprintf("%d", s.value), core.ColorBrightWhite)
	}
}

// renderPreview draws a piece normalized to the top-left of area.
func renderPreview(dst *core.Screen, area core.Rect, p engine.PieceView) {
	minX, minY := p.Cells[0].X, p.Cells[0].Y
	for _, c := range p.Cells[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
	}
	color := ScreenColor(p.Color)
	for _, c := range p.Cells {
		drawBlock(dst, area.X+(c.X-minX)*cellW, area.Y+c.Y-minY, color)
	}
}

func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	dst.DrawTextColor(x, y, "██", c)
}

// renderOverlay draws a boxed message centered in area.
func (g *Game) renderOverlay(dst *core.Screen, area core.Rect, line1, line2 string) {
	w := core.Clamp(max(len(line1), len(line2))+4, 0, area.W)
	box := area.Centered(w, core.Clamp(5, 0, area.H))

	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box, box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box, box.Y+3, line2, core.ColorDefault)
}
