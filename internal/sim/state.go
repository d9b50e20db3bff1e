package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Phase is the session lifecycle: NotStarted → Running → GameOver, and back
// to Running through Restarted.
type Phase int

const (
	NotStarted Phase = iota
	Running
	GameOver
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case GameOver:
		return "game_over"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// FrameEvents reports what happened during one Update.
type FrameEvents struct {
	Replanned bool
	Captured  bool // the enemy caught the player; frontends release pointer lock
}

// Option customises a GameState at construction.
type Option func(*GameState)

// WithLogger routes session logging through l.
func WithLogger(l *logrus.Entry) Option {
	return func(s *GameState) { s.log = l }
}

// WithEventLog records structured events into el.
func WithEventLog(el *EventLog) Option {
	return func(s *GameState) { s.events = el }
}

// WithSessionIDs replaces the random session id source, so seeded runs can
// reproduce their ids.
func WithSessionIDs(next func() string) Option {
	return func(s *GameState) { s.newID = next }
}

// GameState owns everything the simulation mutates. A restart builds a new
// GameState instead of resetting fields.
type GameState struct {
	Grid      *Grid
	Tuning    Tuning
	Player    Player
	Enemy     Enemy
	Phase     Phase
	StartTime time.Time
	FinalTime time.Duration
	SessionID string
	Frame     int

	distance float64
	pf       *Pathfinder
	log      *logrus.Entry
	events   *EventLog
	newID    func() string
	opts     []Option
}

// NewGameState creates a session that has not started yet.
func NewGameState(grid *Grid, t Tuning, opts ...Option) *GameState {
	s := &GameState{
		Grid:   grid,
		Tuning: t,
		Player: NewPlayer(t.PlayerSpawn, t),
		Enemy:  NewEnemy(t.EnemySpawn, t),
		pf:     NewPathfinder(grid),
		opts:   opts,
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logrus.NewEntry(logrus.StandardLogger())
	}
	if s.events == nil {
		s.events = NewEventLog(false)
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	s.log = s.log.WithField("component", "sim")
	s.distance = s.Enemy.Pos().Dist(s.Player.Pos())
	return s
}

// Start moves a NotStarted session to Running and plans the first route.
func (s *GameState) Start(now time.Time) {
	if s.Phase != NotStarted {
		return
	}
	s.Phase = Running
	s.StartTime = now
	s.SessionID = s.newID()
	s.log = s.log.WithField("session", s.SessionID)
	s.Enemy.Replan(s.pf, s.Player.Pos())
	s.log.WithFields(logrus.Fields{
		"waypoints": len(s.Enemy.Path),
		"distance":  s.distance,
	}).Info("session started")
	s.events.Add(s.Frame, EventSession, "start", s.SessionID, float64(len(s.Enemy.Path)))
}

// Restarted returns a fresh, running session with the same grid, tuning and
// options.
func (s *GameState) Restarted(now time.Time) *GameState {
	ns := NewGameState(s.Grid, s.Tuning, s.opts...)
	ns.Start(now)
	s.log.WithField("next_session", ns.SessionID).Info("session restarted")
	return ns
}

// Update runs one frame: player look and movement, then the enemy, then the
// capture check. It does nothing unless the session is Running.
func (s *GameState) Update(in InputState, now time.Time) FrameEvents {
	var ev FrameEvents
	if s.Phase != Running {
		return ev
	}
	s.Frame++
	t := s.Tuning

	s.Player.Look(in, t)
	s.Player.Move(in, s.Grid, t)

	elapsed := now.Sub(s.StartTime).Seconds()
	if s.Enemy.Step(s.pf, s.Player.Pos(), elapsed, t) {
		ev.Replanned = true
		s.log.WithField("waypoints", len(s.Enemy.Path)).Debug("enemy replanned")
		s.events.Add(s.Frame, EventEnemy, "replan",
			fmt.Sprintf("waypoints=%d", len(s.Enemy.Path)), float64(len(s.Enemy.Path)))
	}

	s.distance = s.Enemy.Pos().Dist(s.Player.Pos())
	s.events.AddVerbose(s.Frame, EventPlayer, "distance", fmt.Sprintf("%.2f", s.distance), s.distance)

	if s.distance < t.CaptureRadius {
		s.Phase = GameOver
		s.FinalTime = now.Sub(s.StartTime)
		ev.Captured = true
		s.log.WithFields(logrus.Fields{
			"survived_s": int(s.FinalTime.Seconds()),
			"frames":     s.Frame,
		}).Info("player caught")
		s.events.Add(s.Frame, EventSession, "capture",
			fmt.Sprintf("survived=%ds", int(s.FinalTime.Seconds())), s.FinalTime.Seconds())
	}
	return ev
}

// Distance is the player-enemy distance as of the last Update.
func (s *GameState) Distance() float64 { return s.distance }

// Events returns the structured event log.
func (s *GameState) Events() *EventLog { return s.events }

// Elapsed returns the running time, frozen at capture.
func (s *GameState) Elapsed(now time.Time) time.Duration {
	switch s.Phase {
	case Running:
		return now.Sub(s.StartTime)
	case GameOver:
		return s.FinalTime
	}
	return 0
}

// HUD is the per-frame readout handed to the overlay.
type HUD struct {
	Phase          Phase
	ElapsedSeconds int
	Stamina        float64 // 0–100
	Distance       float64
	DistanceText   string  // one decimal place
	Warning        float64 // 0–1 proximity opacity
	FinalSeconds   int     // set once caught
}

// HUD snapshots the overlay values at now.
func (s *GameState) HUD(now time.Time) HUD {
	h := HUD{
		Phase:          s.Phase,
		ElapsedSeconds: int(math.Floor(s.Elapsed(now).Seconds())),
		Stamina:        s.Player.Stamina / s.Tuning.MaxStamina * 100,
		Distance:       s.distance,
		DistanceText:   fmt.Sprintf("%.1f", s.distance),
		Warning:        WarningLevel(s.distance, s.Tuning),
	}
	if s.Phase == GameOver {
		h.FinalSeconds = int(s.FinalTime.Seconds())
	}
	return h
}

// Summary is a one-line description of the session, used for the clipboard.
func (s *GameState) Summary(now time.Time) string {
	return fmt.Sprintf("Dread Maze session %s: %s after %ds (%d frames)",
		s.SessionID, s.Phase, int(s.Elapsed(now).Seconds()), s.Frame)
}
