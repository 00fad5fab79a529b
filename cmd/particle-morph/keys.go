package main

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/landmark"
	"github.com/lixenwraith/particle-morph/render"
	"github.com/lixenwraith/particle-morph/shape"
)

// Synthetic hand steering per key press
const (
	handMoveStep = 0.02
	handGrowStep = 0.01
)

type tint struct {
	name string
	hex  string
}

var palette = []tint{
	{"magenta", "#ff00cc"},
	{"cyan", "#00e5ff"},
	{"gold", "#ffc400"},
	{"lime", "#76ff03"},
	{"white", "#ffffff"},
}

// app routes keyboard input; anything touching control state is posted to the tick goroutine
type app struct {
	anim     *engine.Animator
	synth    *landmark.SyntheticSource // nil when replaying
	preview  *render.Preview           // nil when headless
	loveText string
	tintIdx  int
}

// handleKey applies one key press and returns false to quit
func (a *app) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		a.moveHand(-handMoveStep)
	case tcell.KeyRight:
		a.moveHand(handMoveStep)
	case tcell.KeyUp:
		a.growHand(handGrowStep)
	case tcell.KeyDown:
		a.growHand(-handGrowStep)
	case tcell.KeyTab:
		if a.preview != nil {
			a.anim.Post(a.preview.ToggleHUD)
		}
	case tcell.KeyRune:
		return a.handleRune(r)
	}
	return true
}

func (a *app) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case '1':
		a.selectShape(shape.Shape{Kind: shape.KindGalaxy})
	case '2':
		a.selectShape(shape.Shape{Kind: shape.KindHeart})
	case '3':
		a.selectShape(shape.Shape{Kind: shape.KindSaturn})
	case '4':
		a.selectShape(shape.Shape{Kind: shape.KindFlower})
	case '5':
		a.selectShape(shape.Text(a.loveText))
	case 't':
		a.cycleTint()
	case 'h':
		a.setPose(landmark.PoseAbsent)
	case 'n':
		a.setPose(landmark.PoseFist)
	case 'v':
		a.setPose(landmark.PoseVSign)
	case 'p':
		a.setPose(landmark.PosePointing)
	case 'f':
		a.setPose(landmark.PoseFourFingers)
	}
	return true
}

func (a *app) selectShape(s shape.Shape) {
	a.anim.Post(func() {
		if err := a.anim.Controller().Select(s); err != nil {
			log.Printf("select %v: %v", s, err)
		}
	})
}

func (a *app) cycleTint() {
	a.tintIdx = (a.tintIdx + 1) % len(palette)
	t := palette[a.tintIdx]
	a.anim.Post(func() {
		if err := a.anim.Controller().SetTint(t.hex); err != nil {
			log.Printf("tint %s: %v", t.name, err)
			return
		}
		if a.preview != nil {
			a.preview.SetPaletteName(t.name)
		}
	})
}

func (a *app) setPose(p landmark.Pose) {
	if a.synth != nil {
		a.synth.SetPose(p)
	}
}

func (a *app) moveHand(dx float64) {
	if a.synth != nil {
		a.synth.Move(dx)
	}
}

func (a *app) growHand(ds float64) {
	if a.synth != nil {
		a.synth.Grow(ds)
	}
}
