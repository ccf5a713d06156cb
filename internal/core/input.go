package core

import "time"

// Action represents a semantic control action, abstracted from physical key presses.
// Letters typed by the player are not actions; they travel in InputFrame.Keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow - move up in menus
	ActionDown           // Down arrow - move down in menus
	ActionConfirm        // Enter - confirm selection / restart after game over
	ActionBack           // Escape when not playing - go back to menu
	ActionRestart        // Enter after game over
	ActionQuit           // Ctrl+C - exit game/session
	ActionPause          // Escape / Ctrl+P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
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

// InputFrame represents everything the player did between two simulation ticks.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Keys holds discrete key-down events in arrival order. Each entry is the
	// key's string form; games decide which ones are meaningful.
	Keys []string

	// Clicks holds mouse presses in screen cells, in arrival order.
	Clicks []Point

	// Elapsed is the real time since the previous tick. Zero means the
	// platform did not measure it and games fall back to the nominal tick.
	Elapsed time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Type appends a typed key to the frame.
func (f *InputFrame) Type(key string) {
	f.Keys = append(f.Keys, key)
}

// Click appends a mouse press to the frame.
func (f *InputFrame) Click(x, y int) {
	f.Clicks = append(f.Clicks, Point{X: x, Y: y})
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Keys = f.Keys[:0]
	f.Clicks = f.Clicks[:0]
	f.Elapsed = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Keys = append([]string(nil), f.Keys...)
	clone.Clicks = append([]Point(nil), f.Clicks...)
	clone.Elapsed = f.Elapsed
	return clone
}
