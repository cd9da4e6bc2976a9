package tui

import (
	"time"

	"github.com/vovakirdan/tank-rampage/internal/core"
)

// DefaultHoldTime is how long a driving key counts as held after its last
// press or auto-repeat.
const DefaultHoldTime = 150 * time.Millisecond

// opposite pairs the driving actions that cancel each other.
var opposite = map[core.Action]core.Action{
	core.ActionMoveForward:  core.ActionMoveBackward,
	core.ActionMoveBackward: core.ActionMoveForward,
	core.ActionRotateLeft:   core.ActionRotateRight,
	core.ActionRotateRight:  core.ActionRotateLeft,
}

// HeldKeys turns key press events into a held-input frame. Terminals only
// report presses, so a driving action stays held until its key stops
// repeating for the hold time. Pause, confirm and restart are one-shot:
// they appear in exactly one frame.
type HeldKeys struct {
	holdFor time.Duration
	until   map[core.Action]time.Time
	pulses  core.InputFrame
}

// NewHeldKeys creates a tracker with the given hold time.
func NewHeldKeys(holdFor time.Duration) *HeldKeys {
	if holdFor <= 0 {
		holdFor = DefaultHoldTime
	}
	return &HeldKeys{
		holdFor: holdFor,
		until:   make(map[core.Action]time.Time),
		pulses:  core.NewInputFrame(),
	}
}

// Press records a key press for a at time now.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionNone, core.ActionQuit:
		return
	case core.ActionConfirm, core.ActionPause, core.ActionRestart:
		h.pulses.Set(a)
	default:
		delete(h.until, opposite[a])
		h.until[a] = now.Add(h.holdFor)
	}
}

// Frame returns the actions held at now and consumes pending one-shot
// actions. Expired holds are dropped.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	frame := h.pulses.Clone()
	h.pulses.Clear()
	for a, until := range h.until {
		if now.After(until) {
			delete(h.until, a)
			continue
		}
		frame.Set(a)
	}
	return frame
}

// Release drops every held and pending action.
func (h *HeldKeys) Release() {
	clear(h.until)
	h.pulses.Clear()
}
