// Package render draws the particle field into a terminal as a density preview
package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// Density ramp, sparse to dense
var densityGlyphs = []rune(" .:-=+*#%@")

// Camera and smoothing
const (
	cameraDistance = 70.0
	cameraFovDeg   = 45.0
	cameraNear     = 1.0
	cameraFar      = 200.0

	// cellAspect is the height:width ratio of a terminal cell
	cellAspect = 2.0

	springFrequency = 6.0
	springDamping   = 1.0
)

var rgbBackground = tcell.NewRGBColor(0, 0, 0)

// Preview projects particles onto the terminal grid and shades each cell by how many land in it
// The renderer owns rotation: it integrates the pointing velocity or its own idle spin
type Preview struct {
	screen tcell.Screen
	fps    int

	spring      harmonica.Spring
	angle       float64
	shownAngle  float64
	angularVel  float64
	showHUD     bool
	paletteName string

	width, height int
	view          mgl64.Mat4
	proj          mgl64.Mat4
	density       []uint16
}

// NewPreview creates a preview that smooths displayed rotation for the given frame rate
func NewPreview(screen tcell.Screen, fps int) *Preview {
	p := &Preview{
		screen:  screen,
		fps:     fps,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		view:    mgl64.LookAtV(mgl64.Vec3{0, 0, cameraDistance}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}),
		showHUD: true,
	}
	return p
}

// ToggleHUD shows or hides the status line
func (p *Preview) ToggleHUD() {
	p.showHUD = !p.showHUD
}

// SetPaletteName labels the current tint in the HUD
func (p *Preview) SetPaletteName(name string) {
	p.paletteName = name
}

// Angle returns the integrated rotation target in radians
func (p *Preview) Angle() float64 {
	return p.angle
}

// resize rebuilds the projection when the terminal size changes
func (p *Preview) resize(w, h int) {
	if w == p.width && h == p.height {
		return
	}
	p.width, p.height = w, h
	aspect := float64(w) / (float64(max(h, 1)) * cellAspect)
	p.proj = mgl64.Perspective(mgl64.DegToRad(cameraFovDeg), aspect, cameraNear, cameraFar)
	p.density = make([]uint16, w*h)
}

// drawRows is the particle area height, leaving the last row for the HUD
func (p *Preview) drawRows() int {
	if p.showHUD && p.height > 1 {
		return p.height - 1
	}
	return p.height
}

// advance integrates rotation and eases the displayed angle toward it
func (p *Preview) advance(out engine.Output) {
	if out.Rotating {
		p.angle += out.RotationVelocity
	} else {
		p.angle += parameter.IdleAutoRotation
	}
	p.shownAngle, p.angularVel = p.spring.Update(p.shownAngle, p.angularVel, p.angle)
}

// transform returns the full model-view-projection for this frame
func (p *Preview) transform(expansion float64) mgl64.Mat4 {
	model := mgl64.HomogRotate3DY(p.shownAngle).Mul4(mgl64.Scale3D(expansion, expansion, expansion))
	return p.proj.Mul4(p.view).Mul4(model)
}

// project maps a world point to a cell; ok is false when it falls outside the drawing area
func (p *Preview) project(mvp mgl64.Mat4, v vmath.Vec3F, rows int) (x, y int, ok bool) {
	clip := mvp.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1})
	if clip.W() <= 0 {
		return 0, 0, false
	}
	nx, ny := clip.X()/clip.W(), clip.Y()/clip.W()
	if nx < -1 || nx >= 1 || ny <= -1 || ny > 1 {
		return 0, 0, false
	}
	x = int((nx + 1) / 2 * float64(p.width))
	y = int((1 - ny) / 2 * float64(rows))
	if x < 0 || x >= p.width || y < 0 || y >= rows {
		return 0, 0, false
	}
	return x, y, true
}

// Draw renders one frame and shows it
func (p *Preview) Draw(out engine.Output) {
	w, h := p.screen.Size()
	p.resize(w, h)
	p.advance(out)

	p.screen.Clear()
	if w <= 0 || h <= 0 {
		p.screen.Show()
		return
	}

	rows := p.drawRows()
	clear(p.density)

	mvp := p.transform(out.Expansion)
	var peak uint16
	for _, v := range out.Positions {
		x, y, ok := p.project(mvp, v, rows)
		if !ok {
			continue
		}
		i := y*w + x
		if p.density[i] < math.MaxUint16 {
			p.density[i]++
		}
		peak = max(peak, p.density[i])
	}

	if peak > 0 {
		p.shade(out.Tint, rows, peak)
	}
	if p.showHUD {
		p.drawHUD(out, h-1)
	}
	p.screen.Show()
}

// shade writes density glyphs with a tint whose lightness follows log density
func (p *Preview) shade(tint colorful.Color, rows int, peak uint16) {
	black := colorful.Color{}
	logPeak := math.Log1p(float64(peak))
	last := len(densityGlyphs) - 1

	for y := 0; y < rows; y++ {
		for x := 0; x < p.width; x++ {
			d := p.density[y*p.width+x]
			if d == 0 {
				continue
			}
			level := math.Log1p(float64(d)) / logPeak
			glyph := densityGlyphs[max(1, int(math.Round(level*float64(last))))]
			c := black.BlendLab(tint, 0.35+0.65*level).Clamped()
			r, g, b := c.RGB255()
			style := tcell.StyleDefault.Background(rgbBackground).Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			p.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}
