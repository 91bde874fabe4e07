package tetris

import "github.com/vovakirdan/termtris/internal/games/tetris/engine"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Seed        int64
	Frame       uint64
	DropCounter int
	Celebrating int
	Paused      bool
	Engine      engine.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Seed:        g.seed,
		Frame:       g.frame,
		DropCounter: g.dropCounter,
		Celebrating: g.celebrating,
		Paused:      g.paused,
		Engine:      g.eng.Snapshot(),
	}
}
