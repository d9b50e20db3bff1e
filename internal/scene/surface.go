// Package scene projects a sim.GameState into a first-person view on any
// immediate-mode 2D Surface.
package scene

import "image/color"

// Surface is the drawing target for one frame. Coordinates are pixels with the
// origin top-left. Implementations re-read their size on every call to Size,
// so a resized window takes effect on the next frame.
type Surface interface {
	Size() (w, h int)

	FillRect(x, y, w, h float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	FillEllipse(cx, cy, rx, ry float64, c color.NRGBA)
	// StrokeArc strokes the clockwise arc from start to end (radians, screen
	// space with y down).
	StrokeArc(cx, cy, r, start, end, width float64, c color.NRGBA)

	// LinearGradient fills the rect with a vertical gradient from top to bottom.
	LinearGradient(x, y, w, h float64, top, bottom color.NRGBA)
	// RadialGradient covers the whole surface: inner up to r0, outer from r1,
	// interpolated between.
	RadialGradient(cx, cy, r0, r1 float64, inner, outer color.NRGBA)

	// SetGlow adds a halo of colour c to subsequent circle and ellipse fills.
	// blur <= 0 turns it off.
	SetGlow(c color.NRGBA, blur float64)
}

// Lerp interpolates two colours channel by channel, t clamped to [0,1].
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Hex parses "#rgb" or "#rrggbb" into an opaque colour. Malformed input yields
// black.
func Hex(s string) color.NRGBA {
	c := color.NRGBA{A: 255}
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	nib := func(b byte) uint8 {
		switch {
		case b >= '0' && b <= '9':
			return b - '0'
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10
		}
		return 0
	}
	switch len(s) {
	case 3:
		c.R, c.G, c.B = nib(s[0])*17, nib(s[1])*17, nib(s[2])*17
	case 6:
		c.R = nib(s[0])<<4 | nib(s[1])
		c.G = nib(s[2])<<4 | nib(s[3])
		c.B = nib(s[4])<<4 | nib(s[5])
	}
	return c
}

// Alpha returns c with its alpha set to a in [0,1].
func Alpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}
