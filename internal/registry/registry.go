// Package registry maps game IDs to factories. Games register themselves in
// init(); the command layer and the replay runner look them up by the ID stored
// alongside each replay.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/termtris/internal/core"
)

// Game is the contract between a game and the frame driver.
// Games contain pure logic with no Bubble Tea dependency; the platform owns
// input mapping, timing and terminal output.
type Game interface {
	// ID returns the identifier used on the command line and in replays.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new game from the config's seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one frame, applying the frame's actions in order.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Replayable is a Game whose sessions can be recorded and re-simulated.
// Seed and Frame identify the current game; Dump is a colorless board
// rendering for headless output.
type Replayable interface {
	Game
	Seed() int64
	Frame() uint64
	Dump() string
}

// Factory creates a new, not yet reset, game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a game factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
}

// IDs returns the registered game IDs in sorted order.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// CreateReplayable instantiates a game by ID and checks that it supports replays.
func CreateReplayable(id string) (Replayable, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	r, ok := g.(Replayable)
	if !ok {
		return nil, fmt.Errorf("registry: game %q does not support replays", id)
	}
	return r, nil
}
