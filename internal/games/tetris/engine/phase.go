package engine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Phase is the engine's lifecycle state.
type Phase string

const (
	PhaseFalling  Phase = "falling"
	PhaseClearing Phase = "clearing"
	PhaseGameOver Phase = "game_over"
)

const (
	eventSettle = "settle"
	eventSpawn  = "spawn"
	eventTopOut = "top_out"
)

// newPhaseMachine builds the lifecycle:
//
//	falling --settle--> clearing --spawn--> falling
//	                    clearing --top_out--> game_over
func newPhaseMachine() *fsm.FSM {
	return fsm.NewFSM(
		string(PhaseFalling),
		fsm.Events{
			{Name: eventSettle, Src: []string{string(PhaseFalling)}, Dst: string(PhaseClearing)},
			{Name: eventSpawn, Src: []string{string(PhaseClearing)}, Dst: string(PhaseFalling)},
			{Name: eventTopOut, Src: []string{string(PhaseClearing)}, Dst: string(PhaseGameOver)},
		},
		fsm.Callbacks{},
	)
}

// transition fires a lifecycle event. The engine only fires events that are
// valid from its current phase, so a failure is a bug.
func (e *Engine) transition(event string) {
	if err := e.phase.Event(context.Background(), event); err != nil {
		panic(fmt.Sprintf("engine: %s from %s: %v", event, e.phase.Current(), err))
	}
}
