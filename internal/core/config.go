package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW           int   // Screen width in characters
	ScreenH           int   // Screen height in characters
	TickRate          int   // Frames per second driving the game
	Seed              int64 // RNG seed for deterministic gameplay
	CelebrationFrames int   // Frames the four-line celebration freezes play
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score       int
	Level       int // Zero-based speed level
	Lines       int
	GameOver    bool
	Paused      bool
	Celebrating bool
}

// EventKind identifies something notable that happened during a step.
type EventKind int

const (
	EventSettled EventKind = iota + 1
	EventLinesCleared
	EventLevelUp
	EventCelebration
	EventGameOver
	EventRestart
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventSettled:
		return "settled"
	case EventLinesCleared:
		return "lines_cleared"
	case EventLevelUp:
		return "level_up"
	case EventCelebration:
		return "celebration"
	case EventGameOver:
		return "game_over"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is a step notification for the driver (logging, persistence).
// Value carries the event's number: rows cleared, the new level, the score.
type Event struct {
	Kind  EventKind
	Value int
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether an event of kind k was emitted.
func (r StepResult) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
