package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Dread-Maze/internal/scene"
)

// gradientBands caps how many strips a vertical gradient is split into.
const gradientBands = 96

// radialTexSize is the edge length of the cached radial falloff texture.
const radialTexSize = 256

// screenSurface adapts an *ebiten.Image to scene.Surface. The target is
// swapped in at the start of every Draw.
type screenSurface struct {
	target *ebiten.Image

	glow     color.NRGBA
	glowBlur float64

	radial    *ebiten.Image
	radialKey radialKey
}

type radialKey struct {
	ratio        float64 // r0/r1
	inner, outer color.NRGBA
}

func (s *screenSurface) Size() (int, int) {
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

func (s *screenSurface) FillRect(x, y, w, h float64, c color.NRGBA) {
	if w <= 0 || h <= 0 || c.A == 0 {
		return
	}
	vector.FillRect(s.target, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *screenSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	if r <= 0 {
		return
	}
	s.drawGlow(cx, cy, r, r)
	vector.FillCircle(s.target, float32(cx), float32(cy), float32(r), c, true)
}

// FillEllipse scans the ellipse as one-pixel rows.
func (s *screenSurface) FillEllipse(cx, cy, rx, ry float64, c color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	s.drawGlow(cx, cy, rx, ry)
	s.scanEllipse(cx, cy, rx, ry, c)
}

func (s *screenSurface) scanEllipse(cx, cy, rx, ry float64, c color.NRGBA) {
	for dy := -ry; dy < ry; dy++ {
		mid := dy + 0.5
		if mid > ry {
			mid = ry
		}
		k := 1 - (mid*mid)/(ry*ry)
		if k <= 0 {
			continue
		}
		half := rx * math.Sqrt(k)
		vector.FillRect(s.target, float32(cx-half), float32(cy+dy), float32(2*half), 1, c, false)
	}
}

func (s *screenSurface) StrokeArc(cx, cy, r, start, end, width float64, c color.NRGBA) {
	if r <= 0 || end <= start {
		return
	}
	n := int(math.Max(8, r*(end-start)/3))
	px, py := cx+math.Cos(start)*r, cy+math.Sin(start)*r
	for i := 1; i <= n; i++ {
		a := start + (end-start)*float64(i)/float64(n)
		x, y := cx+math.Cos(a)*r, cy+math.Sin(a)*r
		vector.StrokeLine(s.target, float32(px), float32(py), float32(x), float32(y), float32(width), c, true)
		px, py = x, y
	}
}

func (s *screenSurface) LinearGradient(x, y, w, h float64, top, bottom color.NRGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	bands := int(math.Min(gradientBands, math.Ceil(h)))
	step := h / float64(bands)
	for i := 0; i < bands; i++ {
		t := (float64(i) + 0.5) / float64(bands)
		// +1 hides seams between fractional bands.
		vector.FillRect(s.target, float32(x), float32(y+float64(i)*step), float32(w), float32(step+1),
			scene.Lerp(top, bottom, t), false)
	}
}

// RadialGradient stretches a cached falloff texture over the circle of radius
// r1 and fills the area outside it with the outer colour.
func (s *screenSurface) RadialGradient(cx, cy, r0, r1 float64, inner, outer color.NRGBA) {
	if r1 <= 0 {
		return
	}
	key := radialKey{ratio: r0 / r1, inner: inner, outer: outer}
	if s.radial == nil || s.radialKey != key {
		s.radial = ebiten.NewImageFromImage(radialTexture(key))
		s.radialKey = key
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2*r1/radialTexSize, 2*r1/radialTexSize)
	op.GeoM.Translate(cx-r1, cy-r1)
	s.target.DrawImage(s.radial, op)

	w, h := s.Size()
	fw, fh := float64(w), float64(h)
	left, right := cx-r1, cx+r1
	top, bottom := cy-r1, cy+r1
	s.FillRect(0, 0, fw, top, outer)
	s.FillRect(0, bottom, fw, fh-bottom, outer)
	s.FillRect(0, math.Max(0, top), left, math.Min(fh, bottom)-math.Max(0, top), outer)
	s.FillRect(right, math.Max(0, top), fw-right, math.Min(fh, bottom)-math.Max(0, top), outer)
}

func (s *screenSurface) SetGlow(c color.NRGBA, blur float64) {
	s.glow, s.glowBlur = c, blur
}

// drawGlow approximates a canvas shadow blur with a few translucent rings.
func (s *screenSurface) drawGlow(cx, cy, rx, ry float64) {
	if s.glowBlur <= 0 {
		return
	}
	const rings = 4
	halo := scene.Alpha(s.glow, float64(s.glow.A)/255*0.12)
	for i := rings; i >= 1; i-- {
		grow := s.glowBlur * float64(i) / rings
		if rx == ry {
			vector.FillCircle(s.target, float32(cx), float32(cy), float32(rx+grow), halo, true)
			continue
		}
		s.scanEllipse(cx, cy, rx+grow, ry+grow, halo)
	}
}

// radialTexture renders the falloff on the CPU once per distinct key.
func radialTexture(k radialKey) image.Image {
	r := scene.NewRaster(radialTexSize, radialTexSize)
	const half = radialTexSize / 2
	r.RadialGradient(half, half, k.ratio*half, half, k.inner, k.outer)
	return r.Image()
}
