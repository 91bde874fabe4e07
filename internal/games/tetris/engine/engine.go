package engine

import "github.com/looplab/fsm"

// Intent is a discrete player move.
type Intent uint8

const (
	IntentRotateCW Intent = iota
	IntentShiftDown
	IntentShiftLeft
	IntentShiftRight
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentRotateCW:
		return "RotateCW"
	case IntentShiftDown:
		return "ShiftDown"
	case IntentShiftLeft:
		return "ShiftLeft"
	case IntentShiftRight:
		return "ShiftRight"
	default:
		return "Unknown"
	}
}

// TickResult reports what one gravity step did.
type TickResult struct {
	Moved     bool // The active piece fell one row
	Settled   bool // The active piece was cemented into the grid
	Cleared   int  // Rows removed by this commit (0-4)
	Points    int  // Score gained by this commit
	LevelUp   bool // The level advanced
	Celebrate bool // Four rows were cleared at once
	GameOver  bool // The promoted piece did not fit: the game just ended
}

// Engine is the game state machine. It owns the grid, the falling piece, the
// queued next piece and the statistics. It is not safe for concurrent use;
// drivers serialize ticks and intents onto one goroutine.
type Engine struct {
	src    Source
	grid   Grid
	active Piece
	next   Piece
	lines  int
	level  int
	score  int
	phase  *fsm.FSM
}

// New creates an engine with an empty grid drawing shapes from src.
func New(src Source) *Engine {
	e := &Engine{src: src}
	e.Reset()
	return e
}

// Reset empties the board, clears statistics and spawns fresh pieces.
func (e *Engine) Reset() {
	e.grid = Grid{}
	e.active = Spawn(randomShape(e.src))
	e.next = Spawn(randomShape(e.src))
	e.lines = 0
	e.level = 0
	e.score = 0
	e.phase = newPhaseMachine()
}

// Legal reports whether every cell of p is on the board and unoccupied.
func (e *Engine) Legal(p Piece) bool {
	for _, c := range p.Cells() {
		if !e.grid.IsEmpty(c) {
			return false
		}
	}
	return true
}

// Apply performs a player intent and reports whether the piece moved.
func (e *Engine) Apply(in Intent) bool {
	switch in {
	case IntentRotateCW:
		return e.Rotate()
	case IntentShiftDown:
		return e.ShiftDown()
	case IntentShiftLeft:
		return e.ShiftLeft()
	case IntentShiftRight:
		return e.ShiftRight()
	default:
		return false
	}
}

// Rotate turns the active piece clockwise. A rejected rotation restores the
// piece exactly.
func (e *Engine) Rotate() bool {
	if !e.falling() {
		return false
	}
	prev := e.active
	e.active.Rotate()
	if !e.Legal(e.active) {
		e.active = prev
		return false
	}
	return true
}

// ShiftDown moves the active piece one row down if the target is free.
func (e *Engine) ShiftDown() bool {
	if !e.falling() || !e.active.ShiftDown() {
		return false
	}
	if !e.Legal(e.active) {
		e.active.ShiftUp()
		return false
	}
	return true
}

// ShiftLeft moves the active piece one column left if the target is free.
func (e *Engine) ShiftLeft() bool {
	if !e.falling() || !e.active.ShiftLeft() {
		return false
	}
	if !e.Legal(e.active) {
		e.active.ShiftRight()
		return false
	}
	return true
}

// ShiftRight moves the active piece one column right if the target is free.
func (e *Engine) ShiftRight() bool {
	if !e.falling() || !e.active.ShiftRight() {
		return false
	}
	if !e.Legal(e.active) {
		e.active.ShiftLeft()
		return false
	}
	return true
}

// Tick applies gravity once. When the piece cannot fall it is cemented, full
// rows are cleared, the score and level are updated and the next piece is
// promoted. Ticking a finished game does nothing.
func (e *Engine) Tick() TickResult {
	if !e.falling() {
		return TickResult{}
	}
	if e.ShiftDown() {
		return TickResult{Moved: true}
	}

	res := e.cement()
	if !e.spawnNext() {
		res.GameOver = true
	}
	return res
}

// cement writes the active piece into the grid and runs line clearing and
// scoring for the commit.
func (e *Engine) cement() TickResult {
	e.transition(eventSettle)

	color := e.active.Color()
	for _, c := range e.active.Cells() {
		e.grid.Set(c, color)
	}

	res := TickResult{Settled: true, Points: PlacementBonus}
	res.Cleared = e.grid.ClearLines()
	if res.Cleared > 0 {
		res.Points += LineClearBonus(res.Cleared)
		e.lines += res.Cleared

		level := nextLevel(e.level, e.lines)
		res.LevelUp = level != e.level
		e.level = level

		res.Celebrate = res.Cleared == 4
	}
	e.score += res.Points
	return res
}

// spawnNext promotes the queued piece and draws a new one. It reports false,
// ending the game, when the promoted piece overlaps settled cells.
func (e *Engine) spawnNext() bool {
	e.active = Spawn(e.next.Shape)
	e.next = Spawn(randomShape(e.src))
	if !e.Legal(e.active) {
		e.transition(eventTopOut)
		return false
	}
	e.transition(eventSpawn)
	return true
}

func (e *Engine) falling() bool {
	return e.phase.Is(string(PhaseFalling))
}

// Active returns the falling piece.
func (e *Engine) Active() Piece { return e.active }

// Next returns the queued piece.
func (e *Engine) Next() Piece { return e.next }

// Grid returns a copy of the settled cells.
func (e *Engine) Grid() Grid { return e.grid }

// Lines returns the cumulative number of cleared rows.
func (e *Engine) Lines() int { return e.lines }

// Level returns the current index into the speed table.
func (e *Engine) Level() int { return e.level }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Phase returns the lifecycle state.
func (e *Engine) Phase() Phase { return Phase(e.phase.Current()) }

// IsOver reports whether the game has ended.
func (e *Engine) IsOver() bool {
	return e.phase.Is(string(PhaseGameOver))
}
