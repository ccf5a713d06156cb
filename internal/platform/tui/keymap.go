package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-crusher/internal/core"
)

// KeyMapper translates Bubble Tea messages to game input.
// While playing, every printable key is typed; only control keys are actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a control key to an action. gameOver selects the
// end-of-round meaning of enter and esc.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, gameOver bool) core.Action {
	switch msg.String() {
	case "ctrl+c":
		return core.ActionQuit
	case "ctrl+p":
		return core.ActionPause
	case "esc":
		if gameOver {
			return core.ActionBack
		}
		return core.ActionPause
	case "enter":
		if gameOver {
			return core.ActionRestart
		}
	}
	return core.ActionNone
}

// MapKeyToFrame updates an input frame from a key message.
// Returns the action the key triggered, if any.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, gameOver bool) core.Action {
	if action := km.MapKey(msg, gameOver); action != core.ActionNone {
		frame.Set(action)
		return action
	}
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			frame.Type(string(r))
		}
	case tea.KeySpace:
		frame.Type(" ")
	}
	return core.ActionNone
}

// MapMouseToFrame records left-button presses as clicks.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		frame.Click(msg.X, msg.Y)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
