// Package tetris adapts the falling-block engine to the fixed-rate frame loop.
// Gravity runs at the current level's cadence, converted to frames.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/games/tetris/engine"
	"github.com/vovakirdan/termtris/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "tetris"

// Game implements registry.Game on top of engine.Engine.
type Game struct {
	eng  *engine.Engine
	seed int64

	tickRate          int
	celebrationFrames int
	screenW           int
	screenH           int

	frame       uint64 // Frames stepped since the last reset
	dropCounter int    // Frames since the last gravity tick
	celebrating int    // Frames left in the celebration freeze
	paused      bool
}

// New creates a Tetris game. Call Reset before stepping it.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset starts a new game seeded with cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.tickRate = max(1, cfg.TickRate)
	g.celebrationFrames = max(0, cfg.CelebrationFrames)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.eng = engine.New(engine.NewSource(cfg.Seed))
	g.frame = 0
	g.dropCounter = 0
	g.celebrating = 0
	g.paused = false
}

// restart begins the next game with a seed derived from the current one, so a
// whole session stays reproducible from its first seed.
func (g *Game) restart() {
	g.Reset(core.RuntimeConfig{
		ScreenW:           g.screenW,
		ScreenH:           g.screenH,
		TickRate:          g.tickRate,
		Seed:              rand.New(rand.NewSource(g.seed)).Int63(),
		CelebrationFrames: g.celebrationFrames,
	})
}

// FramesPerDrop converts a level's gravity interval to frames at tickRate.
// Gravity fires at least once per frame.
func FramesPerDrop(level, tickRate int) int {
	frames := engine.DropInterval(level) * time.Duration(tickRate) / time.Second
	return max(1, int(frames))
}

// Step advances the game by one frame.
//
// Intents are applied in the order they arrived, then the gravity counter
// advances. Pause and the celebration freeze both stop gravity; intents are
// dropped while either is active.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng.IsOver() {
		if in.Has(core.ActionRestart) {
			g.restart()
			return core.StepResult{
				State:  g.State(),
				Events: []core.Event{{Kind: core.EventRestart}},
			}
		}
		return core.StepResult{State: g.State()}
	}

	g.frame++
	g.processInput(in)

	if g.paused {
		return core.StepResult{State: g.State()}
	}
	if g.celebrating > 0 {
		g.celebrating--
		return core.StepResult{State: g.State()}
	}

	g.dropCounter++
	if g.dropCounter < FramesPerDrop(g.eng.Level(), g.tickRate) {
		return core.StepResult{State: g.State()}
	}
	g.dropCounter = 0

	res := g.eng.Tick()
	if res.Celebrate {
		g.celebrating = g.celebrationFrames
	}
	return core.StepResult{State: g.State(), Events: g.events(res)}
}

// processInput applies the frame's actions in arrival order.
func (g *Game) processInput(in core.InputFrame) {
	for _, a := range in.Actions {
		if a == core.ActionPause {
			g.paused = !g.paused
			continue
		}
		if g.paused || g.celebrating > 0 {
			continue
		}
		if intent, ok := intentFor(a); ok {
			g.eng.Apply(intent)
		}
	}
}

func intentFor(a core.Action) (engine.Intent, bool) {
	switch a {
	case core.ActionRotate:
		return engine.IntentRotateCW, true
	case core.ActionDown:
		return engine.IntentShiftDown, true
	case core.ActionLeft:
		return engine.IntentShiftLeft, true
	case core.ActionRight:
		return engine.IntentShiftRight, true
	default:
		return 0, false
	}
}

// events translates a gravity tick into driver notifications.
func (g *Game) events(res engine.TickResult) []core.Event {
	if !res.Settled {
		return nil
	}
	events := []core.Event{{Kind: core.EventSettled, Value: g.eng.Score()}}
	if res.Cleared > 0 {
		events = append(events, core.Event{Kind: core.EventLinesCleared, Value: res.Cleared})
	}
	if res.LevelUp {
		events = append(events, core.Event{Kind: core.EventLevelUp, Value: g.eng.Level()})
	}
	if res.Celebrate {
		events = append(events, core.Event{Kind: core.EventCelebration, Value: res.Cleared})
	}
	if res.GameOver {
		events = append(events, core.Event{Kind: core.EventGameOver, Value: g.eng.Score()})
	}
	return events
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:       g.eng.Score(),
		Level:       g.eng.Level(),
		Lines:       g.eng.Lines(),
		GameOver:    g.eng.IsOver(),
		Paused:      g.paused,
		Celebrating: g.celebrating > 0,
	}
}

// Seed returns the seed of the current game.
func (g *Game) Seed() int64 {
	return g.seed
}

// Frame returns how many frames the current game has been stepped.
func (g *Game) Frame() uint64 {
	return g.frame
}

// Dump returns the engine's text rendering of the board.
func (g *Game) Dump() string {
	return g.eng.Dump()
}
