package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Dread-Maze/internal/scene"
	"github.com/Garsondee/Dread-Maze/internal/sim"
)

// Config carries everything the window build needs from the command line.
type Config struct {
	Width  int
	Height int
	Grid   *sim.Grid  // nil uses the built-in maze
	Tuning sim.Tuning // zero value uses DefaultTuning
	Logger *logrus.Entry
}

// Game is the ebiten.Game for the windowed build. The simulation itself lives
// in sim.GameState; Game only gathers input, drives updates and draws.
type Game struct {
	width  int
	height int

	state    *sim.GameState
	renderer *scene.Renderer
	surface  *screenSurface
	hud      *hud
	ptr      *pointer
	log      *logrus.Entry

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
	status        string // death-screen note, cleared on restart
	title         string

	now       func() time.Time
	clipboard func(string) error
	pressed   func(ebiten.Key) bool
	mouseDown func(ebiten.MouseButton) bool
	cursor    func() (int, int)
	setTitle  func(string)
}

// New builds a game waiting on its start screen.
func New(cfg Config) (*Game, error) {
	if cfg.Grid == nil {
		cfg.Grid = sim.DefaultMaze()
	}
	if cfg.Tuning == (sim.Tuning{}) {
		cfg.Tuning = sim.DefaultTuning()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	h, err := newHUD()
	if err != nil {
		return nil, err
	}
	return &Game{
		width:     cfg.Width,
		height:    cfg.Height,
		state:     sim.NewGameState(cfg.Grid, cfg.Tuning, sim.WithLogger(cfg.Logger)),
		renderer:  scene.NewRenderer(),
		surface:   &screenSurface{},
		hud:       h,
		ptr:       newPointer(),
		log:       cfg.Logger.WithField("component", "frontend"),
		prevKeys:  map[ebiten.Key]bool{},
		now:       time.Now,
		clipboard: setClipboardText,
		pressed:   ebiten.IsKeyPressed,
		mouseDown: ebiten.IsMouseButtonPressed,
		cursor:    ebiten.CursorPosition,
		setTitle:  ebiten.SetWindowTitle,
	}, nil
}

// State exposes the current session.
func (g *Game) State() *sim.GameState { return g.state }

func (g *Game) Update() error {
	now := g.now()
	g.handleInput(now)

	g.ptr.Sample(g.cursor())
	ev := g.state.Update(snapshot(heldKeys(g.pressed), g.ptr), now)
	if ev.Captured {
		g.ptr.Release()
	}
	if t := g.Title(); t != g.title {
		g.setTitle(t)
		g.title = t
	}
	return nil
}

// handleInput processes the session keys (edge-triggered).
func (g *Game) handleInput(now time.Time) {
	currentKeys := map[ebiten.Key]bool{}
	edge := func(k ebiten.Key) bool {
		currentKeys[k] = g.pressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	click := g.mouseDown(ebiten.MouseButtonLeft) && !g.prevMouseLeft
	g.prevMouseLeft = g.mouseDown(ebiten.MouseButtonLeft)
	enter := edge(ebiten.KeyEnter)
	restart := edge(ebiten.KeyR)
	copySummary := edge(ebiten.KeyC)
	escape := edge(ebiten.KeyEscape)

	switch g.state.Phase {
	case sim.NotStarted:
		if click || enter {
			g.state.Start(now)
			g.ptr.Lock()
		}
	case sim.Running:
		if escape && g.ptr.locked {
			g.ptr.Release()
		} else if click && !g.ptr.locked {
			g.ptr.Lock()
		}
	case sim.GameOver:
		switch {
		case click || enter || restart:
			g.state = g.state.Restarted(now)
			g.status = ""
			g.ptr.Lock()
		case copySummary:
			g.copySummary(now)
		}
	}

	g.prevKeys = currentKeys
}

func (g *Game) copySummary(now time.Time) {
	summary := g.state.Summary(now)
	if err := g.clipboard(summary); err != nil {
		g.log.WithError(err).Warn("copy summary failed")
		g.status = "Could not copy: " + err.Error()
		return
	}
	g.log.WithField("summary", summary).Info("summary copied")
	g.status = "Summary copied to clipboard"
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := g.now()
	g.surface.target = screen
	g.drawScene(g.surface, now)

	v := g.state.HUD(now)
	switch v.Phase {
	case sim.NotStarted:
		g.hud.drawStart(screen)
	case sim.Running:
		g.hud.drawReadout(screen, v)
	case sim.GameOver:
		g.hud.drawReadout(screen, v)
		g.hud.drawDeath(screen, v, g.status)
	}
}

// drawScene renders the maze once a session is under way. The start screen
// shows over a cleared frame.
func (g *Game) drawScene(dst scene.Surface, now time.Time) bool {
	if g.state.Phase == sim.NotStarted {
		return false
	}
	g.renderer.Render(dst, g.state, now)
	return true
}

// Layout follows the window size so the view can be resized freely.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

// Title is the window title for the current phase.
func (g *Game) Title() string {
	if g.state.Phase == sim.GameOver {
		return fmt.Sprintf("Dread Maze - caught after %ds", int(g.state.FinalTime.Seconds()))
	}
	return "Dread Maze"
}
