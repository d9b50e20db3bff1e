package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/Dread-Maze/internal/sim"
)

func TestRunChase_IdleIsCaught(t *testing.T) {
	h := sim.NewHeadless(sim.WithSeed(1))
	rs := runChase(1, 1, h, 5000)
	if !rs.caught {
		t.Fatalf("idle player should be caught, ended at distance %.2f", rs.endDistance)
	}
	if rs.minDistance >= h.State.Tuning.CaptureRadius {
		t.Fatalf("min distance %.2f should be inside the capture radius", rs.minDistance)
	}
	if rs.replans == 0 || rs.survivedSec <= 0 {
		t.Fatalf("unexpected stats %+v", rs)
	}
}

func TestRunChase_FrameCap(t *testing.T) {
	h := sim.NewHeadless(sim.WithSeed(1))
	rs := runChase(1, 1, h, 10)
	if rs.caught || rs.frames != 10 {
		t.Fatalf("expected 10 uncaught frames, got %+v", rs)
	}
}

func TestPrintAggregate(t *testing.T) {
	var buf bytes.Buffer
	printAggregate(&buf, []runStats{
		{caught: true, survivedSec: 10, replans: 4},
		{caught: true, survivedSec: 20, replans: 6},
		{caught: false, survivedSec: 120, replans: 10},
	})
	out := buf.String()
	for _, want := range []string{"runs=3 caught=2 capture_rate=67%", "avg=15.0s median=15.0s", "avg_replans_per_run=6.7"} {
		if !strings.Contains(out, want) {
			t.Fatalf("aggregate missing %q:\n%s", want, out)
		}
	}
}

func TestMedianString(t *testing.T) {
	if got := medianString([]float64{3, 1, 2}); got != "2.0s" {
		t.Fatalf("expected 2.0s, got %s", got)
	}
	if got := medianString(nil); got != "n/a" {
		t.Fatalf("expected n/a, got %s", got)
	}
}

func TestWriteSnapshot_PNG(t *testing.T) {
	h := sim.NewHeadless()
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := writeSnapshot(path, h, 64, 40); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 64, 40) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestEncodeImage_UnknownFormat(t *testing.T) {
	err := encodeImage(&bytes.Buffer{}, ".gif", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported-format error, got %v", err)
	}
}

func TestEncodeImage_BMPAndTIFF(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for _, ext := range []string{".bmp", ".TIFF"} {
		var buf bytes.Buffer
		if err := encodeImage(&buf, ext, img); err != nil {
			t.Fatalf("%s: %v", ext, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("%s: empty output", ext)
		}
	}
}
