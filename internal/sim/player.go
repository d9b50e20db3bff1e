package sim

import "math"

// Player is the first-person viewer.
type Player struct {
	X, Y             float64
	Angle            float64 // facing, radians; 0 = +X
	Pitch            float64 // head tilt, clamped to ±Tuning.PitchLimit
	Z                float64 // jump height above the floor
	VerticalVelocity float64
	Stamina          float64
	IsSprinting      bool
	IsOnGround       bool
	BobPhase         float64 // weapon bob accumulator, cosmetic only
}

// NewPlayer places a rested player at spawn facing +X.
func NewPlayer(spawn Point, t Tuning) Player {
	return Player{
		X:          spawn.X,
		Y:          spawn.Y,
		Stamina:    t.MaxStamina,
		IsOnGround: true,
	}
}

// Pos returns the player's floor position.
func (p *Player) Pos() Point { return Point{X: p.X, Y: p.Y} }

// Look applies mouse deltas to facing and pitch while the pointer is locked.
func (p *Player) Look(in InputState, t Tuning) {
	if !in.PointerLocked {
		return
	}
	p.Angle += in.MouseDX * t.MouseSensitivity
	p.Pitch -= in.MouseDY * t.MouseSensitivity
	p.Pitch = clamp(p.Pitch, -t.PitchLimit, t.PitchLimit)
}

// Move integrates one frame of walking, stamina, jumping and weapon bob.
// It returns the displacement that was attempted (before collision).
func (p *Player) Move(in InputState, g *Grid, t Tuning) (dx, dy float64) {
	moving := in.Moving()
	p.IsSprinting = in.Sprinting()

	if p.IsSprinting && p.Stamina > 0 && moving {
		p.Stamina -= t.StaminaDrain
	} else if p.Stamina < t.MaxStamina {
		p.Stamina += t.StaminaRegen
	}
	p.Stamina = clamp(p.Stamina, 0, t.MaxStamina)

	speed := t.PlayerSpeed
	if p.IsSprinting && p.Stamina > 0 {
		speed *= t.SprintMultiplier
	}

	cos, sin := math.Cos(p.Angle), math.Sin(p.Angle)
	if in.Held.Has(KeyForward) {
		dx += cos * speed
		dy += sin * speed
	}
	if in.Held.Has(KeyBack) {
		dx -= cos * speed * t.BackwardFactor
		dy -= sin * speed * t.BackwardFactor
	}
	if in.Held.Has(KeyStrafeLeft) {
		dx += math.Cos(p.Angle-math.Pi/2) * speed * t.StrafeFactor
		dy += math.Sin(p.Angle-math.Pi/2) * speed * t.StrafeFactor
	}
	if in.Held.Has(KeyStrafeRight) {
		dx += math.Cos(p.Angle+math.Pi/2) * speed * t.StrafeFactor
		dy += math.Sin(p.Angle+math.Pi/2) * speed * t.StrafeFactor
	}

	// Resolve each axis on its own so diagonal pushes slide along walls.
	if !Collides(g, p.X+dx, p.Y, t.CollisionMargin) {
		p.X += dx
	}
	if !Collides(g, p.X, p.Y+dy, t.CollisionMargin) {
		p.Y += dy
	}

	if in.Held.Has(KeyJump) && p.IsOnGround {
		p.VerticalVelocity = t.JumpVelocity
		p.IsOnGround = false
	}
	p.Z += p.VerticalVelocity
	p.VerticalVelocity -= t.Gravity
	if p.Z <= 0 {
		p.Z = 0
		p.IsOnGround = true
		p.VerticalVelocity = 0
	}

	if dx != 0 || dy != 0 {
		step := t.BobStep
		if p.IsSprinting {
			step *= t.SprintBobFactor
		}
		p.BobPhase += step
	}
	return dx, dy
}

// Collides reports whether a square of half-size margin centred on (x, y)
// has any corner inside a wall cell.
func Collides(g *Grid, x, y, margin float64) bool {
	return g.IsWallAt(x-margin, y-margin) ||
		g.IsWallAt(x-margin, y+margin) ||
		g.IsWallAt(x+margin, y-margin) ||
		g.IsWallAt(x+margin, y+margin)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeAngle wraps an angle to [-pi, pi].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
