package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionMoveForward         // W, Up arrow - drive forward
	ActionMoveBackward        // S, Down arrow - reverse
	ActionRotateLeft          // A, Left arrow - turn counter-clockwise
	ActionRotateRight         // D, Right arrow - turn clockwise
	ActionFire                // Space - shoot
	ActionConfirm             // Enter - continue to the next level
	ActionRestart             // R key - restart game after game over
	ActionQuit                // Q, Ctrl+C - exit game/session
	ActionPause               // P - pause/unpause game
)

// actionNames holds the external names of the driving actions. Only these
// can be produced by InputFromNames.
var actionNames = map[string]Action{
	"moveForward":  ActionMoveForward,
	"moveBackward": ActionMoveBackward,
	"rotateLeft":   ActionRotateLeft,
	"rotateRight":  ActionRotateRight,
	"fire":         ActionFire,
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveForward:
		return "MoveForward"
	case ActionMoveBackward:
		return "MoveBackward"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// ParseAction looks up a driving action by its external name.
func ParseAction(name string) (Action, bool) {
	a, ok := actionNames[name]
	return a, ok
}

// InputFrame represents the held actions of the player during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are held this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// InputFromNames builds a frame from named flags such as "moveForward" or
// "fire". Unknown names are ignored.
func InputFromNames(flags map[string]bool) InputFrame {
	f := NewInputFrame()
	for name, held := range flags {
		if a, ok := ParseAction(name); ok && held {
			f.Set(a)
		}
	}
	return f
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
