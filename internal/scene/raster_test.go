package scene

import (
	"image/color"
	"testing"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func TestRaster_FillRectClips(t *testing.T) {
	r := NewRaster(10, 10)
	r.FillRect(-5, 2, 8, 3, white)
	img := r.Image()
	if got := img.RGBAAt(2, 3); got.R != 255 || got.A != 255 {
		t.Fatalf("expected (2,3) painted, got %+v", got)
	}
	if got := img.RGBAAt(3, 3); got.A != 0 {
		t.Fatalf("expected (3,3) untouched, got %+v", got)
	}
	if got := img.RGBAAt(2, 5); got.A != 0 {
		t.Fatalf("expected (2,5) untouched, got %+v", got)
	}
}

func TestRaster_FillCircle(t *testing.T) {
	r := NewRaster(40, 40)
	r.FillCircle(20, 20, 8, white)
	img := r.Image()
	if got := img.RGBAAt(20, 20); got.R < 250 {
		t.Fatalf("centre should be filled, got %+v", got)
	}
	if got := img.RGBAAt(20, 30); got.A != 0 {
		t.Fatalf("pixel outside the radius should be empty, got %+v", got)
	}
}

func TestRaster_GlowWidensFill(t *testing.T) {
	r := NewRaster(40, 40)
	r.SetGlow(color.NRGBA{R: 255, A: 255}, 10)
	r.FillCircle(20, 20, 4, white)
	if got := r.Image().RGBAAt(20, 30); got.A == 0 {
		t.Fatal("glow halo should reach beyond the circle")
	}
	r.SetGlow(color.NRGBA{}, 0)
	r.Clear(color.NRGBA{})
	r.FillCircle(20, 20, 4, white)
	if got := r.Image().RGBAAt(20, 30); got.A != 0 {
		t.Fatal("glow should be off after SetGlow with zero blur")
	}
}

func TestRaster_LinearGradient(t *testing.T) {
	r := NewRaster(4, 100)
	r.LinearGradient(0, 0, 4, 100, color.NRGBA{A: 255}, white)
	img := r.Image()
	top, bottom := img.RGBAAt(1, 0), img.RGBAAt(1, 99)
	if top.R > 5 || bottom.R < 250 {
		t.Fatalf("expected dark-to-light ramp, got top %+v bottom %+v", top, bottom)
	}
}

func TestRaster_RadialGradientDarkensEdges(t *testing.T) {
	r := NewRaster(60, 60)
	r.Clear(white)
	r.RadialGradient(30, 30, 10, 60, color.NRGBA{}, Alpha(color.NRGBA{}, 0.7))
	img := r.Image()
	if got := img.RGBAAt(30, 30); got.R != 255 {
		t.Fatalf("centre should be untouched, got %+v", got)
	}
	if got := img.RGBAAt(0, 0); got.R >= 200 {
		t.Fatalf("corner should be darkened, got %+v", got)
	}
}

func TestRaster_StrokeArcLowerHalfOnly(t *testing.T) {
	r := NewRaster(40, 40)
	r.StrokeArc(20, 20, 10, 0.2*3.14159, 0.8*3.14159, 3, white)
	img := r.Image()
	if got := img.RGBAAt(20, 30); got.A == 0 {
		t.Fatal("arc should pass below the centre")
	}
	if got := img.RGBAAt(20, 10); got.A != 0 {
		t.Fatal("arc should not reach above the centre")
	}
}

func TestRaster_Resize(t *testing.T) {
	r := NewRaster(4, 4)
	img := r.Image()
	r.Resize(4, 4)
	if r.Image() != img {
		t.Fatal("same size should keep the backing image")
	}
	r.Resize(8, 3)
	if w, h := r.Size(); w != 8 || h != 3 {
		t.Fatalf("expected 8x3, got %dx%d", w, h)
	}
}

func TestHex(t *testing.T) {
	if got := Hex("#2a0808"); got != (color.NRGBA{R: 0x2a, G: 8, B: 8, A: 255}) {
		t.Fatalf("unexpected %+v", got)
	}
	if got := Hex("#300"); got != (color.NRGBA{R: 0x33, A: 255}) {
		t.Fatalf("unexpected %+v", got)
	}
}
