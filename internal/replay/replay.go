// Package replay records games as a seed plus an ordered action log and
// re-simulates them. The engine is deterministic for a given seed, so replaying
// the log reproduces the recorded game exactly.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/registry"
	"github.com/vovakirdan/termtris/internal/storage"
)

// ErrDiverged is returned when a re-simulation does not end the way the
// recording says it did.
var ErrDiverged = errors.New("replay: simulation diverged from recording")

// Recorder collects the actions fed to a game, frame by frame.
type Recorder struct {
	gameID            string
	seed              int64
	tickRate          int
	celebrationFrames int
	inputs            []storage.Input
}

// NewRecorder starts recording the game g, which must have just been reset
// with cfg.
func NewRecorder(g registry.Replayable, cfg core.RuntimeConfig) *Recorder {
	return &Recorder{
		gameID:            g.ID(),
		seed:              g.Seed(),
		tickRate:          cfg.TickRate,
		celebrationFrames: cfg.CelebrationFrames,
	}
}

// Record appends the actions of one frame. frame is the game's frame count
// before the step that consumes in.
func (r *Recorder) Record(frame uint64, in core.InputFrame) {
	for _, a := range in.Actions {
		if a == core.ActionNone || a == core.ActionQuit {
			continue
		}
		r.inputs = append(r.inputs, storage.Input{Frame: frame, Action: a.String()})
	}
}

// Len returns the number of recorded actions.
func (r *Recorder) Len() int {
	return len(r.inputs)
}

// Seed returns the seed of the recorded game.
func (r *Recorder) Seed() int64 {
	return r.seed
}

// Finish builds the replay record for a game that ran for frames frames and
// ended in state for the given reason.
func (r *Recorder) Finish(frames uint64, state core.GameState, reason string) storage.Replay {
	return storage.Replay{
		GameID:            r.gameID,
		Seed:              r.seed,
		TickRate:          r.tickRate,
		CelebrationFrames: r.celebrationFrames,
		Frames:            frames,
		Score:             state.Score,
		Level:             state.Level,
		Lines:             state.Lines,
		EndReason:         reason,
		InputCount:        len(r.inputs),
		Inputs:            append([]storage.Input(nil), r.inputs...),
	}
}

// Config returns the runtime config a replay was recorded with, sized for a
// screen of w x h.
func Config(rep *storage.Replay, w, h int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:           w,
		ScreenH:           h,
		TickRate:          rep.TickRate,
		Seed:              rep.Seed,
		CelebrationFrames: rep.CelebrationFrames,
	}
}

// Player feeds a recorded action log back one frame at a time.
type Player struct {
	inputs []decodedInput
	next   int
	frames uint64
}

type decodedInput struct {
	frame  uint64
	action core.Action
}

// NewPlayer decodes a replay's action log. It fails on unknown action names
// and on frames that go backwards.
func NewPlayer(rep *storage.Replay) (*Player, error) {
	p := &Player{
		inputs: make([]decodedInput, 0, len(rep.Inputs)),
		frames: rep.Frames,
	}
	var last uint64
	for i, in := range rep.Inputs {
		a, ok := core.ParseAction(in.Action)
		if !ok {
			return nil, fmt.Errorf("replay: input %d: unknown action %q", i, in.Action)
		}
		if in.Frame < last {
			return nil, fmt.Errorf("replay: input %d: frame %d after frame %d", i, in.Frame, last)
		}
		last = in.Frame
		p.inputs = append(p.inputs, decodedInput{frame: in.Frame, action: a})
	}
	return p, nil
}

// Next returns the actions recorded for frame. Frames must be requested in
// increasing order.
func (p *Player) Next(frame uint64) core.InputFrame {
	in := core.NewInputFrame()
	for p.next < len(p.inputs) && p.inputs[p.next].frame <= frame {
		if p.inputs[p.next].frame == frame {
			in.Push(p.inputs[p.next].action)
		}
		p.next++
	}
	return in
}

// Done reports whether frame is past the end of the recording.
func (p *Player) Done(frame uint64) bool {
	return frame >= p.frames
}

// Result is the outcome of a headless re-simulation.
type Result struct {
	Game  registry.Replayable
	State core.GameState
}

// Run re-simulates a replay without a terminal and checks that it ends the
// way it was recorded.
func Run(rep *storage.Replay) (*Result, error) {
	g, err := registry.CreateReplayable(rep.GameID)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	player, err := NewPlayer(rep)
	if err != nil {
		return nil, err
	}

	g.Reset(Config(rep, 0, 0))
	state := g.State()
	for !player.Done(g.Frame()) && !state.GameOver {
		state = g.Step(player.Next(g.Frame())).State
	}

	if err := verify(rep, g, state); err != nil {
		return nil, err
	}
	return &Result{Game: g, State: state}, nil
}

func verify(rep *storage.Replay, g registry.Replayable, state core.GameState) error {
	switch {
	case g.Frame() != rep.Frames:
		return fmt.Errorf("%w: ended at frame %d, recorded %d", ErrDiverged, g.Frame(), rep.Frames)
	case (rep.EndReason == storage.EndGameOver) != state.GameOver:
		return fmt.Errorf("%w: game over = %v, recorded reason %q", ErrDiverged, state.GameOver, rep.EndReason)
	case state.Score != rep.Score:
		return fmt.Errorf("%w: score %d, recorded %d", ErrDiverged, state.Score, rep.Score)
	case state.Lines != rep.Lines:
		return fmt.Errorf("%w: lines %d, recorded %d", ErrDiverged, state.Lines, rep.Lines)
	}
	return nil
}
