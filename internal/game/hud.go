package game

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/Garsondee/Dread-Maze/internal/scene"
	"github.com/Garsondee/Dread-Maze/internal/sim"
)

var (
	hudText      = color.NRGBA{R: 220, G: 200, B: 200, A: 255}
	hudDim       = color.NRGBA{R: 150, G: 120, B: 120, A: 255}
	hudPanel     = color.NRGBA{R: 8, G: 2, B: 4, A: 190}
	hudBorder    = color.NRGBA{R: 90, G: 20, B: 20, A: 200}
	staminaFill  = color.NRGBA{R: 200, G: 170, B: 60, A: 255}
	staminaLow   = color.NRGBA{R: 200, G: 50, B: 30, A: 255}
	warningColor = color.NRGBA{R: 255, G: 40, B: 30, A: 255}
	screenShade  = color.NRGBA{A: 200}
	titleColor   = color.NRGBA{R: 200, G: 20, B: 20, A: 255}
)

// hud draws the per-frame readout and the start and death screens.
type hud struct {
	mono  *text.GoTextFaceSource
	title *text.GoTextFaceSource
}

func newHUD() (*hud, error) {
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading mono font: %w", err)
	}
	title, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading title font: %w", err)
	}
	return &hud{mono: mono, title: title}, nil
}

func (h *hud) face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: h.mono, Size: size}
}

func (h *hud) drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, c color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = align
	text.Draw(dst, s, face, op)
}

// drawReadout shows time, stamina and distance top-left, and the proximity
// warning when the enemy is near.
func (h *hud) drawReadout(dst *ebiten.Image, v sim.HUD) {
	const (
		px, py = 16, 16
		pw, ph = 240, 92
		barW   = 150
	)
	vector.FillRect(dst, px, py, pw, ph, hudPanel, false)
	vector.StrokeRect(dst, px, py, pw, ph, 1, hudBorder, false)

	f := h.face(16)
	h.drawText(dst, fmt.Sprintf("TIME     %4ds", v.ElapsedSeconds), f, px+12, py+10, hudText, text.AlignStart)
	h.drawText(dst, "STAMINA", f, px+12, py+36, hudText, text.AlignStart)
	h.drawText(dst, fmt.Sprintf("DISTANCE %s", v.DistanceText), f, px+12, py+62, hudText, text.AlignStart)

	bx, by := float32(px+78), float32(py+40)
	vector.FillRect(dst, bx, by, barW, 12, color.NRGBA{R: 30, G: 20, B: 20, A: 255}, false)
	fill := staminaFill
	if v.Stamina < 25 {
		fill = staminaLow
	}
	vector.FillRect(dst, bx, by, float32(barW*v.Stamina/100), 12, fill, false)
	vector.StrokeRect(dst, bx, by, barW, 12, 1, hudBorder, false)

	if v.Warning > 0 {
		w := float64(dst.Bounds().Dx())
		h.drawText(dst, "IT IS CLOSE", h.face(28), w/2, 24, scene.Alpha(warningColor, v.Warning), text.AlignCenter)
	}
}

// drawStart covers the frame with the title card.
func (h *hud) drawStart(dst *ebiten.Image) {
	w, ht := dst.Bounds().Dx(), dst.Bounds().Dy()
	cx, cy := float64(w)/2, float64(ht)/2
	vector.FillRect(dst, 0, 0, float32(w), float32(ht), screenShade, false)
	h.drawText(dst, "DREAD MAZE", &text.GoTextFace{Source: h.title, Size: 64}, cx, cy-110, titleColor, text.AlignCenter)
	lines := []string{
		"Something is hunting you in the maze.",
		"WASD move   SHIFT sprint   SPACE jump   MOUSE look",
		"",
		"Click or press ENTER to begin",
	}
	f := h.face(18)
	for i, l := range lines {
		c := hudDim
		if i == len(lines)-1 {
			c = hudText
		}
		h.drawText(dst, l, f, cx, cy-10+float64(i)*28, c, text.AlignCenter)
	}
}

// drawDeath shows the survival time and restart hints. status is a one-line
// note such as the clipboard result, or empty.
func (h *hud) drawDeath(dst *ebiten.Image, v sim.HUD, status string) {
	w, ht := dst.Bounds().Dx(), dst.Bounds().Dy()
	cx, cy := float64(w)/2, float64(ht)/2
	vector.FillRect(dst, 0, 0, float32(w), float32(ht), screenShade, false)
	h.drawText(dst, "IT CAUGHT YOU", &text.GoTextFace{Source: h.title, Size: 56}, cx, cy-100, titleColor, text.AlignCenter)
	f := h.face(20)
	h.drawText(dst, fmt.Sprintf("You survived %d seconds", v.FinalSeconds), f, cx, cy-10, hudText, text.AlignCenter)
	h.drawText(dst, "ENTER / click / R to try again     C copy summary", h.face(16), cx, cy+30, hudDim, text.AlignCenter)
	if status != "" {
		h.drawText(dst, status, h.face(14), cx, cy+62, hudDim, text.AlignCenter)
	}
}
