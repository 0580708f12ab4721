package tui

import (
	"github.com/vovakirdan/tui-heist/internal/core"
)

// Terminals report key presses (and autorepeat) but never key releases, so
// continuous actions are held for a window after each press. The first press
// covers the autorepeat delay; repeats only need to bridge the repeat gap.
const (
	holdInitialSeconds = 0.5
	holdRepeatSeconds  = 0.125
)

// continuous actions stay held between presses. Every other action is held
// for exactly one tick so edge-triggered inputs fire once per key press.
var continuous = map[core.Action]bool{
	core.ActionLeft:     true,
	core.ActionRight:    true,
	core.ActionUp:       true,
	core.ActionDown:     true,
	core.ActionInteract: true,
}

// opposite actions cancel each other's hold.
var opposite = map[core.Action]core.Action{
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
}

// HoldTracker turns key presses into per-tick held states.
type HoldTracker struct {
	initial uint64
	repeat  uint64
	tick    uint64
	until   map[core.Action]uint64
}

// NewHoldTracker creates a tracker with hold windows scaled to tickRate.
func NewHoldTracker(tickRate int) *HoldTracker {
	return &HoldTracker{
		initial: max(1, uint64(float64(tickRate)*holdInitialSeconds)),
		repeat:  max(1, uint64(float64(tickRate)*holdRepeatSeconds)),
		until:   make(map[core.Action]uint64),
	}
}

// Press records a key press for the current tick.
func (h *HoldTracker) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if !continuous[a] {
		h.until[a] = h.tick + 1
		return
	}
	if o, ok := opposite[a]; ok {
		delete(h.until, o)
	}
	if h.until[a] > h.tick {
		h.until[a] = max(h.until[a], h.tick+h.repeat)
		return
	}
	h.until[a] = h.tick + h.initial
}

// Frame returns the actions held during the current tick.
func (h *HoldTracker) Frame() core.InputFrame {
	f := core.NewInputFrame()
	for a, until := range h.until {
		if until > h.tick {
			f.Set(a)
		}
	}
	return f
}

// Advance moves to the next tick and forgets expired holds.
func (h *HoldTracker) Advance() {
	h.tick++
	for a, until := range h.until {
		if until <= h.tick {
			delete(h.until, a)
		}
	}
}

// Reset releases every action.
func (h *HoldTracker) Reset() {
	clear(h.until)
}
