package scene

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/Garsondee/Dread-Maze/internal/sim"
)

// recorder is a Surface that counts calls by kind.
type recorder struct {
	w, h  int
	calls map[string]int
	rects []float64 // x of every 1-px-wide FillRect (wall strips)
}

func newRecorder(w, h int) *recorder {
	return &recorder{w: w, h: h, calls: map[string]int{}}
}

func (r *recorder) Size() (int, int) { return r.w, r.h }
func (r *recorder) FillRect(x, _, w, _ float64, _ color.NRGBA) {
	r.calls["rect"]++
	if w == 1 {
		r.rects = append(r.rects, x)
	}
}
func (r *recorder) FillCircle(_, _, _ float64, _ color.NRGBA)     { r.calls["circle"]++ }
func (r *recorder) FillEllipse(_, _, _, _ float64, _ color.NRGBA) { r.calls["ellipse"]++ }
func (r *recorder) StrokeArc(_, _, _, _, _, _ float64, _ color.NRGBA) {
	r.calls["arc"]++
}
func (r *recorder) LinearGradient(_, _, _, _ float64, _, _ color.NRGBA) { r.calls["linear"]++ }
func (r *recorder) RadialGradient(_, _, _, _ float64, _, _ color.NRGBA) { r.calls["radial"]++ }
func (r *recorder) SetGlow(_ color.NRGBA, _ float64)                    { r.calls["glow"]++ }

var frameTime = time.Unix(1700000000, 0)

func stateAt(t *testing.T, player, enemy sim.Point, angle float64) *sim.GameState {
	t.Helper()
	tu := sim.DefaultTuning()
	tu.PlayerSpawn = player
	tu.EnemySpawn = enemy
	s := sim.NewGameState(sim.DefaultMaze(), tu)
	s.Player.Angle = angle
	return s
}

func TestRender_DepthBufferPerColumn(t *testing.T) {
	s := stateAt(t, sim.Point{X: 1.5, Y: 1.5}, sim.Point{X: 18.5, Y: 9.5}, 0)
	r := NewRenderer()
	rec := newRecorder(320, 200)
	r.Render(rec, s, frameTime)
	depth := r.DepthBuffer()
	if len(depth) != 320 {
		t.Fatalf("expected 320 depth entries, got %d", len(depth))
	}
	// The centre ray looks straight down the top corridor.
	if math.Abs(depth[160]-17.5) > 1e-9 {
		t.Fatalf("expected centre depth 17.5, got %.4f", depth[160])
	}
	if len(rec.rects) != 320 {
		t.Fatalf("enclosed maze should draw a strip per column, got %d", len(rec.rects))
	}
	if rec.calls["radial"] != 1 || rec.calls["linear"] != 2 {
		t.Fatalf("expected sky, floor and vignette, got %+v", rec.calls)
	}
}

func TestRender_ResizeReallocatesDepth(t *testing.T) {
	s := stateAt(t, sim.Point{X: 1.5, Y: 1.5}, sim.Point{X: 18.5, Y: 9.5}, 0)
	r := NewRenderer()
	r.Render(newRecorder(100, 80), s, frameTime)
	r.Render(newRecorder(240, 80), s, frameTime)
	if len(r.DepthBuffer()) != 240 {
		t.Fatalf("depth buffer should follow the surface width, got %d", len(r.DepthBuffer()))
	}
	r.Render(newRecorder(50, 80), s, frameTime)
	if len(r.DepthBuffer()) != 50 {
		t.Fatalf("depth buffer should shrink with the surface, got %d", len(r.DepthBuffer()))
	}
}

func TestRender_EnemyInCorridorVisible(t *testing.T) {
	s := stateAt(t, sim.Point{X: 1.5, Y: 1.5}, sim.Point{X: 5.5, Y: 1.5}, 0)
	r := NewRenderer()
	rec := newRecorder(320, 200)
	r.Render(rec, s, frameTime)
	sp, ok := r.LastSprite()
	if !ok {
		t.Fatal("enemy straight ahead in an open corridor should be drawn")
	}
	if math.Abs(sp.ScreenX-160) > 1e-9 || math.Abs(sp.Distance-4) > 1e-9 {
		t.Fatalf("unexpected projection %+v", sp)
	}
	if want := 200.0 / 4 * 1.2; math.Abs(sp.Height-want) > 1e-9 || math.Abs(sp.Width-want/2) > 1e-9 {
		t.Fatalf("unexpected sprite size %+v", sp)
	}
	if rec.calls["ellipse"] != 1 || rec.calls["arc"] != 1 {
		t.Fatalf("expected shadow and mouth, got %+v", rec.calls)
	}
}

func TestRender_EnemyBehindWallOccluded(t *testing.T) {
	// Cell (2,3) is a wall between the two.
	s := stateAt(t, sim.Point{X: 1.5, Y: 3.5}, sim.Point{X: 3.5, Y: 3.5}, 0)
	r := NewRenderer()
	rec := newRecorder(320, 200)
	r.Render(rec, s, frameTime)
	if _, ok := r.LastSprite(); ok {
		t.Fatal("enemy behind a wall should be occluded")
	}
	if rec.calls["ellipse"] != 0 {
		t.Fatal("occluded enemy should draw nothing")
	}
}

func TestRender_EnemyOutsideFOV(t *testing.T) {
	s := stateAt(t, sim.Point{X: 5.5, Y: 1.5}, sim.Point{X: 2.5, Y: 1.5}, 0)
	r := NewRenderer()
	r.Render(newRecorder(320, 200), s, frameTime)
	if _, ok := r.LastSprite(); ok {
		t.Fatal("enemy directly behind the player should not be drawn")
	}
}

func TestRender_EnemyLookingNorth(t *testing.T) {
	s := stateAt(t, sim.Point{X: 1.5, Y: 3.5}, sim.Point{X: 1.5, Y: 1.5}, -math.Pi/2)
	r := NewRenderer()
	r.Render(newRecorder(320, 200), s, frameTime)
	sp, ok := r.LastSprite()
	if !ok || math.Abs(sp.Distance-2) > 1e-9 {
		t.Fatalf("expected a visible enemy 2 cells north, got %+v %v", sp, ok)
	}
}

func TestRender_PitchShiftsSprite(t *testing.T) {
	s := stateAt(t, sim.Point{X: 1.5, Y: 1.5}, sim.Point{X: 5.5, Y: 1.5}, 0)
	r := NewRenderer()
	r.Render(newRecorder(320, 200), s, frameTime)
	level, _ := r.LastSprite()
	s.Player.Pitch = 0.5
	r.Render(newRecorder(320, 200), s, frameTime)
	tilted, _ := r.LastSprite()
	if math.Abs(tilted.Top-level.Top-100) > 1e-9 {
		t.Fatalf("pitch 0.5 should shift the sprite 100px, got %.3f", tilted.Top-level.Top)
	}
}

func TestRender_FearOverlayWhenClose(t *testing.T) {
	r := NewRenderer()
	far := newRecorder(64, 48)
	r.Render(far, stateAt(t, sim.Point{X: 1.5, Y: 1.5}, sim.Point{X: 5.5, Y: 1.5}, 0), frameTime)
	near := newRecorder(64, 48)
	r.Render(near, stateAt(t, sim.Point{X: 1.5, Y: 1.5}, sim.Point{X: 3.5, Y: 1.5}, 0), frameTime)
	// Both draw walls, the enemy body and the weapon; only the near one is tinted.
	if near.calls["rect"]-len(near.rects) != far.calls["rect"]-len(far.rects)+1 {
		t.Fatalf("expected one extra overlay rect, near %+v far %+v", near.calls, far.calls)
	}
}

func TestRender_EmptySurfaceIsNoop(t *testing.T) {
	s := stateAt(t, sim.Point{X: 1.5, Y: 1.5}, sim.Point{X: 18.5, Y: 9.5}, 0)
	rec := newRecorder(0, 0)
	NewRenderer().Render(rec, s, frameTime)
	if len(rec.calls) != 0 {
		t.Fatalf("zero-size surface should not be drawn, got %+v", rec.calls)
	}
}

func TestRender_RasterSmoke(t *testing.T) {
	s := stateAt(t, sim.Point{X: 1.5, Y: 1.5}, sim.Point{X: 5.5, Y: 1.5}, 0)
	ras := NewRaster(160, 100)
	NewRenderer().Render(ras, s, frameTime)
	img := ras.Image()
	sky := img.RGBAAt(80, 5)
	if sky.A != 255 {
		t.Fatalf("frame should be opaque, got %+v", sky)
	}
	if sky.R <= sky.B {
		t.Fatalf("sky should be red-tinted, got %+v", sky)
	}
	if floor := img.RGBAAt(80, 95); floor.R != floor.G || floor.G != floor.B {
		t.Fatalf("floor should be grey, got %+v", floor)
	}
}

func TestWallColor(t *testing.T) {
	near := WallColor(0, sim.SideX, 20)
	if near != (color.NRGBA{R: 100, G: 40, B: 40, A: 255}) {
		t.Fatalf("unexpected near colour %+v", near)
	}
	x := WallColor(10, sim.SideX, 20)
	y := WallColor(10, sim.SideY, 20)
	if x.R != 50 || y.R >= x.R {
		t.Fatalf("Y faces should be darker: x=%+v y=%+v", x, y)
	}
	if far := WallColor(100, sim.SideX, 20); far.R != 10 {
		t.Fatalf("brightness should floor at 0.1, got %+v", far)
	}
}

func TestFearLevel(t *testing.T) {
	tu := sim.DefaultTuning()
	if FearLevel(4, tu) != 0 || FearLevel(10, tu) != 0 {
		t.Fatal("no fear at or beyond the radius")
	}
	if got := FearLevel(2, tu); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("expected 0.25 at distance 2, got %.3f", got)
	}
}
