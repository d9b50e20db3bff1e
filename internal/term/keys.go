package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Dread-Maze/internal/sim"
)

// holdFor is how long a key counts as held after its last press or
// auto-repeat. Terminals never report key release.
const holdFor = 150 * time.Millisecond

// turnRate is the emulated pointer motion per frame while a turn key is held.
const turnRate = 18.0

type control int

const (
	ctlNone control = iota
	ctlForward
	ctlBack
	ctlStrafeLeft
	ctlStrafeRight
	ctlTurnLeft
	ctlTurnRight
	ctlJump
	ctlStart
	ctlQuit
)

var controlKeys = map[control]sim.Key{
	ctlForward:     sim.KeyForward,
	ctlBack:        sim.KeyBack,
	ctlStrafeLeft:  sim.KeyStrafeLeft,
	ctlStrafeRight: sim.KeyStrafeRight,
	ctlJump:        sim.KeyJump,
}

// keyToControl maps a key event to a control. Upper-case letters are the
// shifted keys and also report sprint.
func keyToControl(ev *tcell.EventKey) (ctl control, sprint bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ctlForward, ev.Modifiers()&tcell.ModShift != 0
	case tcell.KeyDown:
		return ctlBack, ev.Modifiers()&tcell.ModShift != 0
	case tcell.KeyLeft:
		return ctlTurnLeft, false
	case tcell.KeyRight:
		return ctlTurnRight, false
	case tcell.KeyEnter:
		return ctlStart, false
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ctlQuit, false
	}
	switch ev.Rune() {
	case 'w':
		return ctlForward, false
	case 'W':
		return ctlForward, true
	case 's':
		return ctlBack, false
	case 'S':
		return ctlBack, true
	case 'a':
		return ctlStrafeLeft, false
	case 'A':
		return ctlStrafeLeft, true
	case 'd':
		return ctlStrafeRight, false
	case 'D':
		return ctlStrafeRight, true
	case 'q', 'Q':
		return ctlTurnLeft, false
	case 'e', 'E':
		return ctlTurnRight, false
	case ' ':
		return ctlJump, false
	case 'r', 'R':
		return ctlStart, false
	case 'x', 'X':
		return ctlQuit, false
	}
	return ctlNone, false
}

// heldKeys turns discrete key presses into a held-key snapshot by giving each
// press a short lifetime.
type heldKeys struct {
	until       map[control]time.Time
	sprintUntil time.Time
}

func newHeldKeys() *heldKeys {
	return &heldKeys{until: map[control]time.Time{}}
}

// Press marks ctl held until now+holdFor.
func (h *heldKeys) Press(ctl control, sprint bool, now time.Time) {
	h.until[ctl] = now.Add(holdFor)
	if sprint {
		h.sprintUntil = now.Add(holdFor)
	}
}

func (h *heldKeys) held(ctl control, now time.Time) bool {
	return now.Before(h.until[ctl])
}

// Reset forgets every press.
func (h *heldKeys) Reset() {
	clear(h.until)
	h.sprintUntil = time.Time{}
}

// Snapshot builds the InputState for now. Turn keys become pointer motion so
// the simulation sees an ordinary mouse look.
func (h *heldKeys) Snapshot(now time.Time) sim.InputState {
	var in sim.InputState
	for ctl, k := range controlKeys {
		if h.held(ctl, now) {
			in.Held = in.Held.With(k)
		}
	}
	if now.Before(h.sprintUntil) {
		in.Held = in.Held.With(sim.KeySprintLeft)
	}
	if h.held(ctlTurnLeft, now) {
		in.MouseDX -= turnRate
	}
	if h.held(ctlTurnRight, now) {
		in.MouseDX += turnRate
	}
	in.PointerLocked = true
	return in
}
