package sim

import "math"

// Enemy is the pursuer. It walks a BFS waypoint list that is rebuilt every
// Tuning.ReplanFrames frames rather than every frame.
type Enemy struct {
	X, Y            float64
	Speed           float64
	BaseSpeed       float64
	Path            []Point // front is the next target
	PathUpdateTimer int
}

// NewEnemy places an idle enemy at spawn.
func NewEnemy(spawn Point, t Tuning) Enemy {
	return Enemy{
		X:         spawn.X,
		Y:         spawn.Y,
		Speed:     t.EnemyBaseSpeed,
		BaseSpeed: t.EnemyBaseSpeed,
	}
}

// Pos returns the enemy's floor position.
func (e *Enemy) Pos() Point { return Point{X: e.X, Y: e.Y} }

// Replan replaces the current path with a fresh route to target.
func (e *Enemy) Replan(pf *Pathfinder, target Point) {
	e.Path = pf.FindPath(e.X, e.Y, target.X, target.Y)
}

// Step advances the enemy by one frame: periodic replanning, the speed ramp
// from elapsedSec, and waypoint following. An empty path holds position.
// Returns true if the path was recomputed this frame.
func (e *Enemy) Step(pf *Pathfinder, target Point, elapsedSec float64, t Tuning) bool {
	replanned := false
	e.PathUpdateTimer++
	if e.PathUpdateTimer > t.ReplanFrames {
		e.PathUpdateTimer = 0
		e.Replan(pf, target)
		replanned = true
	}

	e.Speed = e.BaseSpeed + elapsedSec*t.EnemySpeedRamp

	if len(e.Path) > 0 {
		wp := e.Path[0]
		dx, dy := wp.X-e.X, wp.Y-e.Y
		if math.Hypot(dx, dy) < t.WaypointRadius {
			e.Path = e.Path[1:]
		} else {
			a := math.Atan2(dy, dx)
			e.X += math.Cos(a) * e.Speed
			e.Y += math.Sin(a) * e.Speed
		}
	}
	return replanned
}

// WarningLevel ramps linearly from 0 at WarningRadius to 1 at distance 0.
func WarningLevel(dist float64, t Tuning) float64 {
	if dist >= t.WarningRadius {
		return 0
	}
	return clamp((t.WarningRadius-dist)/t.WarningRadius, 0, 1)
}
