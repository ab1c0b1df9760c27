package core

// Action is a semantic player command, abstracted from physical keys.
// Shells translate their own key events into actions and hand them to the
// game synchronously, one at a time.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // Left arrow
	ActionMoveRight        // Right arrow
	ActionSoftDrop         // Down arrow
	ActionStart            // Enter - spawn and start the frame loop
	ActionQuit             // Q, Ctrl+C
)

// Browser key codes for the arrow keys.
const (
	KeyCodeLeft  = 37
	KeyCodeRight = 39
	KeyCodeDown  = 40
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionStart:
		return "Start"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ActionForKeyCode maps a browser key code to an action.
// Unknown codes map to ActionNone.
func ActionForKeyCode(code int) Action {
	switch code {
	case KeyCodeLeft:
		return ActionMoveLeft
	case KeyCodeRight:
		return ActionMoveRight
	case KeyCodeDown:
		return ActionSoftDrop
	default:
		return ActionNone
	}
}

// Direction returns the horizontal step for a move action: -1, +1, or 0.
func (a Action) Direction() int {
	switch a {
	case ActionMoveLeft:
		return -1
	case ActionMoveRight:
		return 1
	default:
		return 0
	}
}
