package scene

import (
	"image/color"
	"math"
	"time"

	"github.com/Garsondee/Dread-Maze/internal/sim"
)

// Palette.
var (
	skyTop      = Hex("#0a0205")
	skyBottom   = Hex("#2a0808")
	floorTop    = Hex("#151515")
	floorBottom = Hex("#050505")

	shadowColor = color.NRGBA{A: 153}
	bodyColor   = Hex("#080808")
	headColor   = Hex("#101010")
	eyeGlow     = Hex("#ff0000")
	mouthColor  = Hex("#300")

	gunBody   = Hex("#2a2a2a")
	gunBarrel = Hex("#1a1a1a")
	gunDetail = Hex("#3a3a3a")
	gunHandle = Hex("#222")
	gunMuzzle = Hex("#111")

	fearTint = color.NRGBA{R: 139}
)

const (
	pitchScale = 200.0 // pixels of view offset per radian of pitch
	jumpScale  = 100.0 // pixels of view offset per unit of jump height

	wallScale   = 0.8
	minBright   = 0.1
	sideYShade  = 0.7
	spriteScale = 1.2
	spriteNear  = 0.1
	fovSlack    = 0.3 // radians beyond half-FOV a sprite centre may sit

	vignetteAlpha = 0.7
)

// Sprite is the projected enemy for one frame.
type Sprite struct {
	ScreenX  float64 // horizontal centre
	Top      float64
	Width    float64
	Height   float64
	Distance float64
}

// Renderer draws GameState frames and owns the per-frame depth buffer.
// It is not safe for concurrent use.
type Renderer struct {
	depth     []float64
	sprite    Sprite
	spriteHit bool
}

// NewRenderer returns a Renderer with an empty depth buffer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// DepthBuffer returns the ray distance per column from the last Render. The
// slice is reused on the next call.
func (r *Renderer) DepthBuffer() []float64 { return r.depth }

// LastSprite returns the enemy projection from the last Render, if it was
// drawn.
func (r *Renderer) LastSprite() (Sprite, bool) { return r.sprite, r.spriteHit }

// ViewOffset folds pitch and jump height into one vertical screen shift.
func ViewOffset(p sim.Player) float64 {
	return p.Pitch*pitchScale + p.Z*jumpScale
}

// Render draws one complete frame of s to dst: sky and floor, walls, the
// enemy, the weapon, then the vignette and fear overlays. now drives cosmetic
// animation only.
func (r *Renderer) Render(dst Surface, s *sim.GameState, now time.Time) {
	w, h := dst.Size()
	if w <= 0 || h <= 0 {
		return
	}
	fw, fh := float64(w), float64(h)
	offset := ViewOffset(s.Player)
	horizon := fh/2 + offset

	if horizon > 0 {
		dst.LinearGradient(0, 0, fw, horizon, skyTop, skyBottom)
	}
	if horizon < fh {
		dst.LinearGradient(0, horizon, fw, fh-horizon, floorTop, floorBottom)
	}

	r.drawWalls(dst, s, w, h, offset)
	r.sprite, r.spriteHit = r.project(s, w, h, offset)
	if r.spriteHit {
		drawEnemy(dst, r.sprite, now)
	}
	drawWeapon(dst, s.Player.BobPhase, fw, fh)

	dst.RadialGradient(fw/2, fh/2, fh/3, fh, color.NRGBA{}, Alpha(color.NRGBA{}, vignetteAlpha))
	if fear := FearLevel(s.Distance(), s.Tuning); fear > 0 {
		dst.FillRect(0, 0, fw, fh, Alpha(fearTint, fear))
	}
}

func (r *Renderer) drawWalls(dst Surface, s *sim.GameState, w, h int, offset float64) {
	if cap(r.depth) < w {
		r.depth = make([]float64, w)
	}
	r.depth = r.depth[:w]

	t := s.Tuning
	p := s.Player
	fh := float64(h)
	for i := 0; i < w; i++ {
		rayAngle := p.Angle - t.FOV/2 + float64(i)/float64(w)*t.FOV
		ray := s.Grid.CastRay(p.X, p.Y, rayAngle, t.MaxRaySteps)
		r.depth[i] = ray.Distance
		if !ray.Hit {
			continue
		}
		corrected := ray.Distance * math.Cos(rayAngle-p.Angle)
		if corrected <= 0 {
			continue
		}
		wallH := fh / corrected * wallScale
		top := (fh-wallH)/2 + offset
		dst.FillRect(float64(i), top, 1, wallH, WallColor(corrected, ray.Side, t.MaxDepth))
	}
}

// WallColor shades a wall column by distance, darkening Y-side faces.
func WallColor(corrected float64, side int, maxDepth float64) color.NRGBA {
	bright := math.Max(minBright, 1-corrected/maxDepth)
	shade := 1.0
	if side == sim.SideY {
		shade = sideYShade
	}
	k := bright * shade
	return color.NRGBA{
		R: uint8(math.Floor(100 * k)),
		G: uint8(math.Floor(40 * k)),
		B: uint8(math.Floor(40 * k)),
		A: 255,
	}
}

// project places the enemy on screen, or reports false if it is too near, too
// far, outside the view cone or behind the wall in its column. It must run
// after drawWalls has filled the depth buffer.
func (r *Renderer) project(s *sim.GameState, w, h int, offset float64) (Sprite, bool) {
	t := s.Tuning
	p, e := s.Player.Pos(), s.Enemy.Pos()
	dx, dy := e.X-p.X, e.Y-p.Y
	dist := math.Hypot(dx, dy)
	if dist < spriteNear || dist > t.MaxDepth {
		return Sprite{}, false
	}

	half := t.FOV / 2
	rel := sim.NormalizeAngle(math.Atan2(dy, dx) - s.Player.Angle)
	if math.Abs(rel) > half+fovSlack {
		return Sprite{}, false
	}

	fw, fh := float64(w), float64(h)
	screenX := fw/2 + rel/half*(fw/2)
	col := int(math.Floor(screenX))
	if col < 0 || col >= len(r.depth) {
		return Sprite{}, false
	}
	if dist > r.depth[col] {
		return Sprite{}, false
	}

	height := fh / dist * spriteScale
	return Sprite{
		ScreenX:  screenX,
		Top:      fh/2 - height/2 + offset,
		Width:    height / 2,
		Height:   height,
		Distance: dist,
	}, true
}

func drawEnemy(dst Surface, sp Sprite, now time.Time) {
	ms := float64(now.UnixNano()) / float64(time.Millisecond)
	x, top, w, h := sp.ScreenX, sp.Top, sp.Width, sp.Height

	dst.FillEllipse(x, top+h, w/2, h/10, shadowColor)
	dst.FillRect(x-w/2, top+h*0.3, w, h*0.7, bodyColor)

	headR := w * 0.4
	pulse := math.Sin(ms/80) * headR * 0.1
	dst.FillCircle(x, top+h*0.25, headR+pulse, headColor)

	glow := math.Abs(math.Sin(ms / 150))
	eyeR := headR * 0.3
	eyeY := top + h*0.22
	eyeGap := headR * 0.5
	eye := color.NRGBA{R: 255, G: uint8(50 + glow*100), A: 255}
	dst.SetGlow(eyeGlow, 15+glow*15)
	dst.FillCircle(x-eyeGap, eyeY, eyeR, eye)
	dst.FillCircle(x+eyeGap, eyeY, eyeR, eye)
	dst.SetGlow(color.NRGBA{}, 0)

	dst.StrokeArc(x, top+h*0.35, headR*0.4, 0.2*math.Pi, 0.8*math.Pi, 2, mouthColor)
}

func drawWeapon(dst Surface, bob, w, h float64) {
	bobX := math.Sin(bob) * 8
	bobY := math.Abs(math.Cos(bob)) * 12
	gx := w/2 + 80 + bobX
	gy := h - 200 + bobY

	dst.FillRect(gx, gy+60, 130, 65, gunBody)
	dst.FillRect(gx+30, gy+30, 70, 45, gunBody)
	dst.FillRect(gx+40, gy, 50, 45, gunBarrel)
	dst.FillRect(gx+45, gy-25, 40, 35, gunBarrel)
	dst.FillRect(gx+55, gy+45, 35, 8, gunDetail)
	dst.FillRect(gx+55, gy+125, 45, 65, gunHandle)
	dst.FillCircle(gx+65, gy-15, 16, gunMuzzle)
}

// FearLevel is the red overlay opacity: (FearRadius−d)/8 inside FearRadius.
func FearLevel(dist float64, t sim.Tuning) float64 {
	if dist >= t.FearRadius {
		return 0
	}
	return math.Min(1, (t.FearRadius-dist)/8)
}
