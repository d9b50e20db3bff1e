package sim

// Key is one movement or action control.
type Key uint8

const (
	KeyForward Key = iota
	KeyBack
	KeyStrafeLeft
	KeyStrafeRight
	KeySprintLeft
	KeySprintRight
	KeyJump
)

// KeySet is a bitset of held keys.
type KeySet uint16

// With returns the set with k added.
func (s KeySet) With(k Key) KeySet { return s | 1<<k }

// Has reports whether k is held.
func (s KeySet) Has(k Key) bool { return s&(1<<k) != 0 }

// Keys builds a KeySet from a list of keys.
func Keys(ks ...Key) KeySet {
	var s KeySet
	for _, k := range ks {
		s = s.With(k)
	}
	return s
}

// InputState is the input snapshot for one frame. Frontends capture it once
// at the frame boundary; the simulation only ever reads it.
type InputState struct {
	Held          KeySet
	MouseDX       float64 // relative pointer motion since the last frame
	MouseDY       float64
	PointerLocked bool // mouse deltas are only applied while locked
}

// Moving reports whether any movement key is held.
func (in InputState) Moving() bool {
	return in.Held.Has(KeyForward) || in.Held.Has(KeyBack) ||
		in.Held.Has(KeyStrafeLeft) || in.Held.Has(KeyStrafeRight)
}

// Sprinting reports whether either sprint key is held.
func (in InputState) Sprinting() bool {
	return in.Held.Has(KeySprintLeft) || in.Held.Has(KeySprintRight)
}
