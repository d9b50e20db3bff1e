package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Dread-Maze/internal/sim"
)

// keyBindings maps each held control to the physical keys that drive it.
var keyBindings = []struct {
	key  sim.Key
	keys []ebiten.Key
}{
	{sim.KeyForward, []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}},
	{sim.KeyBack, []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}},
	{sim.KeyStrafeLeft, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
	{sim.KeyStrafeRight, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
	{sim.KeySprintLeft, []ebiten.Key{ebiten.KeyShiftLeft}},
	{sim.KeySprintRight, []ebiten.Key{ebiten.KeyShiftRight}},
	{sim.KeyJump, []ebiten.Key{ebiten.KeySpace}},
}

// heldKeys builds the held set from a key query. pressed is
// ebiten.IsKeyPressed outside tests.
func heldKeys(pressed func(ebiten.Key) bool) sim.KeySet {
	var held sim.KeySet
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if pressed(k) {
				held = held.With(b.key)
				break
			}
		}
	}
	return held
}

// pointer tracks relative mouse motion while the cursor is captured.
type pointer struct {
	locked     bool
	primed     bool // lastX/lastY hold a real sample
	lastX      int
	lastY      int
	dx, dy     float64
	setMode    func(ebiten.CursorModeType)
	cursorMode func() ebiten.CursorModeType
}

func newPointer() *pointer {
	return &pointer{setMode: ebiten.SetCursorMode, cursorMode: ebiten.CursorMode}
}

// Lock captures the cursor. The first sample after locking only primes the
// tracker so the view does not jump.
func (p *pointer) Lock() {
	p.setMode(ebiten.CursorModeCaptured)
	p.locked = true
	p.primed = false
}

// Release frees the cursor.
func (p *pointer) Release() {
	p.setMode(ebiten.CursorModeVisible)
	p.locked = false
	p.primed = false
	p.dx, p.dy = 0, 0
}

// Sample records this frame's cursor position and derives the deltas.
func (p *pointer) Sample(x, y int) {
	p.dx, p.dy = 0, 0
	if p.locked && p.cursorMode() != ebiten.CursorModeCaptured {
		// Lost focus or the platform dropped the capture.
		p.locked = false
	}
	if !p.locked {
		p.primed = false
		return
	}
	if p.primed {
		p.dx = float64(x - p.lastX)
		p.dy = float64(y - p.lastY)
	}
	p.lastX, p.lastY = x, y
	p.primed = true
}

// snapshot assembles the per-frame input.
func snapshot(held sim.KeySet, p *pointer) sim.InputState {
	return sim.InputState{
		Held:          held,
		MouseDX:       p.dx,
		MouseDY:       p.dy,
		PointerLocked: p.locked,
	}
}
