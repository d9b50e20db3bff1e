package sim

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Policy produces the input for one frame of a headless run.
type Policy func(s *GameState, rng *rand.Rand) InputState

// Idle never touches the controls.
func Idle(*GameState, *rand.Rand) InputState { return InputState{} }

// Flee turns the player away from the enemy and sprints, with a little
// random steering so it does not pin itself against the first wall.
func Flee(s *GameState, rng *rand.Rand) InputState {
	p, e := s.Player.Pos(), s.Enemy.Pos()
	away := math.Atan2(p.Y-e.Y, p.X-e.X) + (rng.Float64()-0.5)*1.2
	turn := NormalizeAngle(away - s.Player.Angle)
	dx := turn / s.Tuning.MouseSensitivity
	const maxTurn = 40.0 // pointer pixels per frame
	dx = clamp(dx, -maxTurn, maxTurn)
	held := Keys(KeyForward, KeySprintLeft)
	if rng.Intn(8) == 0 {
		held = held.With(KeyStrafeLeft)
	}
	return InputState{Held: held, MouseDX: dx, PointerLocked: true}
}

// Headless drives a GameState on a synthetic clock with no frontend. It backs
// the batch report command and the end-to-end tests.
type Headless struct {
	State     *GameState
	Events    *EventLog
	FrameTime time.Duration

	grid    *Grid
	tuning  Tuning
	policy  Policy
	rng     *rand.Rand
	log     *logrus.Entry
	verbose bool
	clock   time.Time
}

// HeadlessOption configures a Headless run.
type HeadlessOption func(*Headless)

// WithGrid replaces the built-in maze.
func WithGrid(g *Grid) HeadlessOption {
	return func(h *Headless) { h.grid = g }
}

// WithTuning replaces DefaultTuning.
func WithTuning(t Tuning) HeadlessOption {
	return func(h *Headless) { h.tuning = t }
}

// WithSpawns overrides the player and enemy start positions.
func WithSpawns(player, enemy Point) HeadlessOption {
	return func(h *Headless) {
		h.tuning.PlayerSpawn = player
		h.tuning.EnemySpawn = enemy
	}
}

// WithPolicy sets the scripted player.
func WithPolicy(p Policy) HeadlessOption {
	return func(h *Headless) { h.policy = p }
}

// WithSeed seeds the policy RNG for reproducible runs.
func WithSeed(seed int64) HeadlessOption {
	return func(h *Headless) { h.rng = rand.New(rand.NewSource(seed)) } // #nosec G404 -- simulation only
}

// WithVerbose keeps per-frame events in the log.
func WithVerbose(v bool) HeadlessOption {
	return func(h *Headless) { h.verbose = v }
}

// WithHeadlessLogger routes session logging through l instead of discarding it.
func WithHeadlessLogger(l *logrus.Entry) HeadlessOption {
	return func(h *Headless) { h.log = l }
}

// NewHeadless builds and starts a session. Options are applied in order, so
// WithSpawns should follow WithTuning.
func NewHeadless(opts ...HeadlessOption) *Headless {
	h := &Headless{
		FrameTime: time.Second / 60,
		tuning:    DefaultTuning(),
		policy:    Idle,
		rng:       rand.New(rand.NewSource(1)), // #nosec G404 -- simulation default
		clock:     time.Unix(0, 0),
	}
	for _, o := range opts {
		o(h)
	}
	if h.grid == nil {
		h.grid = DefaultMaze()
	}
	if h.log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		h.log = logrus.NewEntry(quiet)
	}
	h.Events = NewEventLog(h.verbose)
	h.State = NewGameState(h.grid, h.tuning,
		WithLogger(h.log), WithEventLog(h.Events), WithSessionIDs(h.sessionID))
	h.State.Start(h.clock)
	return h
}

// sessionID draws a v4 id from the seeded RNG.
func (h *Headless) sessionID() string {
	id, err := uuid.NewRandomFromReader(h.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Now returns the synthetic clock.
func (h *Headless) Now() time.Time { return h.clock }

// Step advances the clock by one frame and updates the session.
func (h *Headless) Step() FrameEvents {
	h.clock = h.clock.Add(h.FrameTime)
	return h.State.Update(h.policy(h.State, h.rng), h.clock)
}

// Run steps until the player is caught or maxFrames have elapsed. It returns
// the number of frames stepped and whether the run ended in capture.
func (h *Headless) Run(maxFrames int) (int, bool) {
	for i := 1; i <= maxFrames; i++ {
		if h.Step().Captured {
			return i, true
		}
	}
	return maxFrames, false
}
