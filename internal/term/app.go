// Package term runs the chase in a terminal: the scene is rasterised in
// software and shown two pixels per cell with upper half-block glyphs.
package term

import (
	"context"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/Garsondee/Dread-Maze/internal/scene"
	"github.com/Garsondee/Dread-Maze/internal/sim"
)

// FrameInterval is the tick period of the terminal loop (about 60 Hz).
const FrameInterval = 16 * time.Millisecond

// Config configures an App.
type Config struct {
	Grid   *sim.Grid  // nil uses the built-in maze
	Tuning sim.Tuning // zero value uses DefaultTuning
	Logger *logrus.Entry

	// Supersample renders the scene this many times larger than the cell
	// grid before scaling it down. Values below 1 mean 1.
	Supersample int
}

// App owns the terminal session.
type App struct {
	screen   tcell.Screen
	state    *sim.GameState
	renderer *scene.Renderer
	big      *scene.Raster
	small    *image.RGBA
	keys     *heldKeys
	log      *logrus.Entry
	scale    int
}

// New wraps an initialised screen. The caller owns Init and Fini.
func New(screen tcell.Screen, cfg Config) *App {
	if cfg.Grid == nil {
		cfg.Grid = sim.DefaultMaze()
	}
	if cfg.Tuning == (sim.Tuning{}) {
		cfg.Tuning = sim.DefaultTuning()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if cfg.Supersample < 1 {
		cfg.Supersample = 1
	}
	return &App{
		screen:   screen,
		state:    sim.NewGameState(cfg.Grid, cfg.Tuning, sim.WithLogger(cfg.Logger)),
		renderer: scene.NewRenderer(),
		big:      scene.NewRaster(1, 1),
		keys:     newHeldKeys(),
		log:      cfg.Logger.WithField("component", "term"),
		scale:    cfg.Supersample,
	}
}

// State exposes the current session.
func (a *App) State() *sim.GameState { return a.state }

// Run pumps events and ticks frames until ctx is cancelled, the player quits
// or the screen closes.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eventCh := make(chan tcell.Event, 32)
	go func() {
		defer close(eventCh)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	a.Frame(time.Now())
	for {
		select {
		case <-ctx.Done():
			a.log.Debug("context cancelled")
			return nil
		case ev, ok := <-eventCh:
			if !ok {
				return nil
			}
			if a.HandleEvent(ev, time.Now()) {
				a.log.WithField("phase", a.state.Phase).Info("quit")
				return nil
			}
		case now := <-ticker.C:
			a.Frame(now)
		}
	}
}

// HandleEvent applies one terminal event and reports whether the player asked
// to quit.
func (a *App) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		ctl, sprint := keyToControl(ev)
		switch ctl {
		case ctlQuit:
			return true
		case ctlStart:
			switch a.state.Phase {
			case sim.NotStarted:
				a.state.Start(now)
			case sim.GameOver:
				a.state = a.state.Restarted(now)
				a.keys.Reset()
			}
		case ctlNone:
		default:
			a.keys.Press(ctl, sprint, now)
		}
	}
	return false
}

// Frame advances the simulation one step and redraws.
func (a *App) Frame(now time.Time) {
	if a.state.Update(a.keys.Snapshot(now), now).Captured {
		a.keys.Reset()
	}
	a.draw(now)
}

func (a *App) draw(now time.Time) {
	cols, rows := a.screen.Size()
	if cols <= 0 || rows <= 1 {
		return
	}
	if a.state.Phase == sim.NotStarted {
		a.screen.Clear()
	} else {
		a.drawScene(cols, rows, now)
	}
	v := a.state.HUD(now)
	drawStatus(a.screen, v, cols, rows-1)
	switch v.Phase {
	case sim.NotStarted:
		drawBanner(a.screen, cols, rows-1, []string{
			"DREAD MAZE",
			"",
			"w/s move  a/d strafe  q/e or arrows turn",
			"SHIFT+key sprint  space jump",
			"",
			"ENTER to begin, ESC to quit",
		})
	case sim.GameOver:
		drawBanner(a.screen, cols, rows-1, []string{
			"IT CAUGHT YOU",
			"",
			survivedLine(v.FinalSeconds),
			"",
			"ENTER or r to try again, ESC to quit",
		})
	}
	a.screen.Show()
}

// drawScene fills every row but the last with the rendered view, two vertical
// pixels per cell.
func (a *App) drawScene(cols, rows int, now time.Time) {
	pw, ph := cols, (rows-1)*2
	a.big.Resize(pw*a.scale, ph*a.scale)
	a.renderer.Render(a.big, a.state, now)

	if a.small == nil || a.small.Rect.Dx() != pw || a.small.Rect.Dy() != ph {
		a.small = image.NewRGBA(image.Rect(0, 0, pw, ph))
	}
	if a.scale == 1 {
		draw.Draw(a.small, a.small.Rect, a.big.Image(), image.Point{}, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(a.small, a.small.Rect, a.big.Image(), a.big.Image().Rect, draw.Src, nil)
	}
	present(a.screen, a.small)
}
