package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tank-rampage/internal/core"
)

// KeyMap defines the key bindings used while playing.
type KeyMap struct {
	Forward  key.Binding
	Backward key.Binding
	Left     key.Binding
	Right    key.Binding
	Fire     key.Binding
	Confirm  key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Left, k.Fire, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.Left, k.Right},
		{k.Fire, k.Confirm, k.Pause, k.Restart},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings: WASD or arrows to drive,
// space to fire.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "forward"),
		),
		Backward: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "reverse"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/d", "turn"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "turn right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "fire"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next level"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action. Keys without a
// game action (help among them) map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Forward):
		return core.ActionMoveForward
	case key.Matches(msg, k.Backward):
		return core.ActionMoveBackward
	case key.Matches(msg, k.Left):
		return core.ActionRotateLeft
	case key.Matches(msg, k.Right):
		return core.ActionRotateRight
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}
