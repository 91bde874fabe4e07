package core

import "strings"

// Action is a semantic player action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionRotate         // Rotate the falling piece clockwise
	ActionDown           // Soft drop one row
	ActionLeft           // Shift one column left
	ActionRight          // Shift one column right
	ActionPause          // Pause/unpause
	ActionRestart        // Start over after game over
	ActionQuit           // Leave the session
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionRotate:  "Rotate",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionPause:   "Pause",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ParseAction is the inverse of Action.String. Matching ignores case.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if a != ActionNone && strings.EqualFold(n, name) {
			return a, true
		}
	}
	return ActionNone, false
}

// InputFrame holds the actions received during one frame, in arrival order.
// Order matters: "left, rotate" and "rotate, left" can land a piece in
// different columns.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Push appends an action to the frame. ActionNone is dropped.
func (f *InputFrame) Push(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Len returns the number of queued actions.
func (f InputFrame) Len() int {
	return len(f.Actions)
}

// Clear resets the frame, keeping the backing array.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone creates an independent copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	if len(f.Actions) == 0 {
		return InputFrame{}
	}
	return InputFrame{Actions: append([]Action(nil), f.Actions...)}
}
