package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tank-rampage/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"w", runeKey('w'), core.ActionMoveForward},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionMoveForward},
		{"s", runeKey('s'), core.ActionMoveBackward},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionMoveBackward},
		{"a", runeKey('a'), core.ActionRotateLeft},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionRotateLeft},
		{"d", runeKey('d'), core.ActionRotateRight},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRotateRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"p", runeKey('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionPause},
		{"r", runeKey('r'), core.ActionRestart},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
		{"help", runeKey('?'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}
