package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/particle-morph/engine"
)

var (
	rgbHudText  = tcell.NewRGBColor(200, 200, 200)
	rgbHudLabel = tcell.NewRGBColor(255, 0, 204)
)

// StatusLine formats the HUD text for one frame
func StatusLine(out engine.Output, palette string) string {
	state := "assembled"
	if out.Dispersed {
		state = "dispersed"
	}
	s := fmt.Sprintf(" %s | %s | gesture: %s | zoom %.2f", out.Shape, state, out.Label, out.Expansion)
	if out.Rotating {
		s += fmt.Sprintf(" | spin %+.3f", out.RotationVelocity)
	}
	if palette != "" {
		s += " | " + palette
	}
	return s + " | 1-5 shape  t tint  h/v/p/f/n hand  q quit"
}

// drawHUD writes the status line on row y, truncated to the screen width by display cells
func (p *Preview) drawHUD(out engine.Output, y int) {
	line := runewidth.Truncate(StatusLine(out, p.paletteName), p.width, "…")
	style := tcell.StyleDefault.Background(rgbBackground).Foreground(rgbHudText)
	labelStyle := style.Foreground(rgbHudLabel)

	x := 0
	for i, r := range line {
		st := style
		// Highlight the shape name up to the first separator
		if i < len(out.Shape.String())+1 {
			st = labelStyle
		}
		p.screen.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
}
