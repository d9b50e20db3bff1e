package scene

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Raster is a software Surface backed by an *image.RGBA. Shapes are filled
// with an anti-aliasing vector rasterizer. It backs the terminal build and
// offline snapshots.
type Raster struct {
	img *image.RGBA
	z   *vector.Rasterizer

	glow     color.NRGBA
	glowBlur float64
}

// NewRaster allocates a w×h raster cleared to transparent black.
func NewRaster(w, h int) *Raster {
	r := &Raster{z: vector.NewRasterizer(1, 1)}
	r.Resize(w, h)
	return r
}

// Resize reallocates the backing image if the size changed.
func (r *Raster) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if r.img != nil && r.img.Rect.Dx() == w && r.img.Rect.Dy() == h {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Image exposes the backing image. It is overwritten by later draws.
func (r *Raster) Image() *image.RGBA { return r.img }

// Clear fills the whole raster with c, replacing what was there.
func (r *Raster) Clear(c color.NRGBA) {
	draw.Draw(r.img, r.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Size implements Surface.
func (r *Raster) Size() (int, int) { return r.img.Rect.Dx(), r.img.Rect.Dy() }

// FillRect implements Surface. Edges are snapped to whole pixels.
func (r *Raster) FillRect(x, y, w, h float64, c color.NRGBA) {
	if w <= 0 || h <= 0 || c.A == 0 {
		return
	}
	rect := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	).Intersect(r.img.Rect)
	if rect.Empty() {
		return
	}
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

// FillCircle implements Surface.
func (r *Raster) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.FillEllipse(cx, cy, radius, radius, c)
}

// FillEllipse implements Surface.
func (r *Raster) FillEllipse(cx, cy, rx, ry float64, c color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	if r.glowBlur > 0 {
		const rings = 4
		halo := Alpha(r.glow, float64(r.glow.A)/255*0.12)
		for i := rings; i >= 1; i-- {
			grow := r.glowBlur * float64(i) / rings
			r.fillPoly(ellipse(cx, cy, rx+grow, ry+grow, 0, 2*math.Pi), halo)
		}
	}
	r.fillPoly(ellipse(cx, cy, rx, ry, 0, 2*math.Pi), c)
}

// StrokeArc implements Surface.
func (r *Raster) StrokeArc(cx, cy, radius, start, end, width float64, c color.NRGBA) {
	if width <= 0 || end <= start {
		return
	}
	outer := ellipse(cx, cy, radius+width/2, radius+width/2, start, end)
	inner := ellipse(cx, cy, math.Max(0, radius-width/2), math.Max(0, radius-width/2), start, end)
	for i := len(inner) - 1; i >= 0; i-- {
		outer = append(outer, inner[i])
	}
	r.fillPoly(outer, c)
}

// LinearGradient implements Surface, one row at a time.
func (r *Raster) LinearGradient(x, y, w, h float64, top, bottom color.NRGBA) {
	if h <= 0 || w <= 0 {
		return
	}
	y0 := int(math.Round(y))
	y1 := int(math.Round(y + h))
	for row := y0; row < y1; row++ {
		if row < r.img.Rect.Min.Y || row >= r.img.Rect.Max.Y {
			continue
		}
		t := (float64(row) + 0.5 - y) / h
		r.FillRect(x, float64(row), w, 1, Lerp(top, bottom, t))
	}
}

// RadialGradient implements Surface over every pixel.
func (r *Raster) RadialGradient(cx, cy, r0, r1 float64, inner, outer color.NRGBA) {
	b := r.img.Rect
	span := r1 - r0
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			d := math.Hypot(float64(px)+0.5-cx, float64(py)+0.5-cy)
			var c color.NRGBA
			switch {
			case d <= r0:
				c = inner
			case d >= r1 || span <= 0:
				c = outer
			default:
				c = Lerp(inner, outer, (d-r0)/span)
			}
			r.blend(px, py, c)
		}
	}
}

// SetGlow implements Surface.
func (r *Raster) SetGlow(c color.NRGBA, blur float64) {
	r.glow, r.glowBlur = c, blur
}

// blend composites c over the pixel at (x, y).
func (r *Raster) blend(x, y int, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	i := r.img.PixOffset(x, y)
	p := r.img.Pix[i : i+4 : i+4]
	a := uint32(c.A)
	inv := 255 - a
	p[0] = uint8((uint32(c.R)*a + uint32(p[0])*inv) / 255)
	p[1] = uint8((uint32(c.G)*a + uint32(p[1])*inv) / 255)
	p[2] = uint8((uint32(c.B)*a + uint32(p[2])*inv) / 255)
	p[3] = uint8(a + uint32(p[3])*inv/255)
}

const coordLimit = 1 << 16

func (r *Raster) fillPoly(pts [][2]float64, c color.NRGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	b := r.img.Rect
	if maxX < 0 || maxY < 0 || minX > float64(b.Dx()) || minY > float64(b.Dy()) {
		return
	}

	lim := func(v float64) float32 {
		return float32(clampf(v, -coordLimit, coordLimit))
	}
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
	r.z.MoveTo(lim(pts[0][0]), lim(pts[0][1]))
	for _, p := range pts[1:] {
		r.z.LineTo(lim(p[0]), lim(p[1]))
	}
	r.z.ClosePath()
	r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

// ellipse approximates the arc of an axis-aligned ellipse from start to end
// with a polyline.
func ellipse(cx, cy, rx, ry, start, end float64) [][2]float64 {
	n := int(clampf((rx+ry)*(end-start)/(2*math.Pi), 12, 96))
	pts := make([][2]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		a := start + (end-start)*float64(i)/float64(n)
		pts = append(pts, [2]float64{cx + math.Cos(a)*rx, cy + math.Sin(a)*ry})
	}
	return pts
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
