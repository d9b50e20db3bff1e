package term

import (
	"fmt"
	"image"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/Garsondee/Dread-Maze/internal/sim"
)

const upperHalf = '▀'

var (
	statusStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(220, 200, 200)).Background(tcell.NewRGBColor(20, 4, 6))
	warningStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 60, 40)).Background(tcell.NewRGBColor(20, 4, 6)).Bold(true)
	bannerStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(230, 40, 40)).Background(tcell.ColorBlack).Bold(true)
)

// present draws img into the screen, two rows of pixels per cell: the upper
// pixel as the glyph colour and the lower as the background.
func present(screen tcell.Screen, img *image.RGBA) {
	b := img.Rect
	for cy := 0; cy*2 < b.Dy(); cy++ {
		for x := 0; x < b.Dx(); x++ {
			top := img.RGBAAt(b.Min.X+x, b.Min.Y+cy*2)
			bottom := top
			if cy*2+1 < b.Dy() {
				bottom = img.RGBAAt(b.Min.X+x, b.Min.Y+cy*2+1)
			}
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x, cy, upperHalf, nil, st)
		}
	}
}

// statusLine formats the HUD readout.
func statusLine(v sim.HUD) string {
	const barCells = 10
	filled := int(v.Stamina/100*barCells + 0.5)
	if filled > barCells {
		filled = barCells
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
	return fmt.Sprintf(" TIME %ds  STAMINA %s %3.0f%%  DISTANCE %s", v.ElapsedSeconds, bar, v.Stamina, v.DistanceText)
}

// fit truncates or pads s to exactly width terminal columns.
func fit(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}

// drawStatus writes the HUD into row y, with the warning flush right when the
// enemy is near.
func drawStatus(screen tcell.Screen, v sim.HUD, cols, y int) {
	line := fit(statusLine(v), cols)
	putString(screen, 0, y, line, statusStyle)
	if v.Warning > 0 {
		warn := strings.Repeat("!", 1+int(v.Warning*4)) + " IT IS CLOSE "
		if w := runewidth.StringWidth(warn); w < cols {
			putString(screen, cols-w, y, warn, warningStyle)
		}
	}
}

// drawBanner centres lines over the scene.
func drawBanner(screen tcell.Screen, cols, rows int, lines []string) {
	y0 := (rows - len(lines)) / 2
	for i, l := range lines {
		if l == "" {
			continue
		}
		l = runewidth.Truncate(" "+l+" ", cols, "…")
		x := (cols - runewidth.StringWidth(l)) / 2
		putString(screen, x, y0+i, l, bannerStyle)
	}
}

func survivedLine(seconds int) string {
	return fmt.Sprintf("You survived %d seconds", seconds)
}

// putString writes s from (x, y), advancing by each rune's display width.
func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
