package sim

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant. The values are hand-tuned; none of them
// is derived from anything else. Lengths are in grid units, speeds in grid
// units per frame.
type Tuning struct {
	FOV         float64 `yaml:"fov"`           // horizontal field of view, radians
	MaxDepth    float64 `yaml:"max_depth"`     // farthest distance shaded or drawn
	MaxRaySteps int     `yaml:"max_ray_steps"` // DDA step cap; long corridors past it report no hit

	PlayerSpeed      float64 `yaml:"player_speed"`
	SprintMultiplier float64 `yaml:"sprint_multiplier"`
	BackwardFactor   float64 `yaml:"backward_factor"`
	StrafeFactor     float64 `yaml:"strafe_factor"`
	MaxStamina       float64 `yaml:"max_stamina"`
	StaminaDrain     float64 `yaml:"stamina_drain"`
	StaminaRegen     float64 `yaml:"stamina_regen"`
	CollisionMargin  float64 `yaml:"collision_margin"`
	JumpVelocity     float64 `yaml:"jump_velocity"`
	Gravity          float64 `yaml:"gravity"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	PitchLimit       float64 `yaml:"pitch_limit"`
	BobStep          float64 `yaml:"bob_step"`
	SprintBobFactor  float64 `yaml:"sprint_bob_factor"`

	EnemyBaseSpeed float64 `yaml:"enemy_base_speed"`
	EnemySpeedRamp float64 `yaml:"enemy_speed_ramp"` // added per elapsed second
	ReplanFrames   int     `yaml:"replan_frames"`
	WaypointRadius float64 `yaml:"waypoint_radius"`
	CaptureRadius  float64 `yaml:"capture_radius"`
	WarningRadius  float64 `yaml:"warning_radius"`
	FearRadius     float64 `yaml:"fear_radius"`

	PlayerSpawn Point `yaml:"-"`
	EnemySpawn  Point `yaml:"-"`
}

// DefaultTuning returns the shipped constants.
func DefaultTuning() Tuning {
	return Tuning{
		FOV:         math.Pi * 0.7, // ~126°, wide on purpose
		MaxDepth:    20,
		MaxRaySteps: 50,

		PlayerSpeed:      0.06,
		SprintMultiplier: 1.8,
		BackwardFactor:   0.7,
		StrafeFactor:     0.8,
		MaxStamina:       100,
		StaminaDrain:     0.5,
		StaminaRegen:     0.2,
		CollisionMargin:  0.2,
		JumpVelocity:     0.15,
		Gravity:          0.008,
		MouseSensitivity: 0.002,
		PitchLimit:       0.8,
		BobStep:          0.15,
		SprintBobFactor:  1.5,

		EnemyBaseSpeed: 0.035,
		EnemySpeedRamp: 0.002,
		ReplanFrames:   30,
		WaypointRadius: 0.3,
		CaptureRadius:  0.6,
		WarningRadius:  5,
		FearRadius:     4,

		PlayerSpawn: Point{X: 1.5, Y: 1.5},
		EnemySpawn:  Point{X: 18.5, Y: 9.5},
	}
}

// LoadTuning reads a YAML file and overlays it on DefaultTuning. Keys that are
// absent keep their default value.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading tuning %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("decoding tuning %q: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %q: %w", path, err)
	}
	return t, nil
}

// Validate rejects values that would stall or destabilise the simulation.
func (t Tuning) Validate() error {
	var errs []error
	positive := []struct {
		name string
		v    float64
	}{
		{"fov", t.FOV},
		{"max_depth", t.MaxDepth},
		{"player_speed", t.PlayerSpeed},
		{"max_stamina", t.MaxStamina},
		{"enemy_base_speed", t.EnemyBaseSpeed},
		{"capture_radius", t.CaptureRadius},
		{"waypoint_radius", t.WaypointRadius},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", p.name, p.v))
		}
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"stamina_drain", t.StaminaDrain},
		{"stamina_regen", t.StaminaRegen},
		{"enemy_speed_ramp", t.EnemySpeedRamp},
		{"gravity", t.Gravity},
		{"warning_radius", t.WarningRadius},
		{"fear_radius", t.FearRadius},
	}
	for _, p := range nonNegative {
		if !(p.v >= 0) {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %v", p.name, p.v))
		}
	}
	if t.FOV >= 2*math.Pi {
		errs = append(errs, fmt.Errorf("fov must be < 2π, got %v", t.FOV))
	}
	if t.MaxRaySteps <= 0 {
		errs = append(errs, fmt.Errorf("max_ray_steps must be > 0, got %d", t.MaxRaySteps))
	}
	if t.ReplanFrames <= 0 {
		errs = append(errs, fmt.Errorf("replan_frames must be > 0, got %d", t.ReplanFrames))
	}
	if t.CollisionMargin < 0 || t.CollisionMargin >= 0.5 {
		errs = append(errs, fmt.Errorf("collision_margin must be in [0,0.5), got %v", t.CollisionMargin))
	}
	if t.PitchLimit < 0 {
		errs = append(errs, fmt.Errorf("pitch_limit must be >= 0, got %v", t.PitchLimit))
	}
	return errors.Join(errs...)
}
