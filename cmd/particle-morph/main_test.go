package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particle-morph/control"
	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/landmark"
	"github.com/lixenwraith/particle-morph/morph"
	"github.com/lixenwraith/particle-morph/shape"
	"github.com/lixenwraith/particle-morph/vmath"
)

func newTestApp(t *testing.T) (*app, *morph.Field) {
	t.Helper()
	clock := engine.NewMockTimeProvider(time.Date(2026, 2, 14, 20, 0, 0, 0, time.UTC))
	field := morph.NewField(200)
	ctrl, err := control.New(field, shape.NewGenerator(nil), vmath.NewFastRand(1), control.DefaultConfig(), clock.Now())
	if err != nil {
		t.Fatalf("control.New: %v", err)
	}
	anim := engine.NewAnimator(field, ctrl, clock, nil)
	return &app{
		anim:     anim,
		synth:    landmark.NewSyntheticSource(vmath.NewFastRand(2)),
		loveText: "I Love You",
	}, field
}

func TestHandleKeyQuit(t *testing.T) {
	a, _ := newTestApp(t)
	tests := []struct {
		key  tcell.Key
		r    rune
		want bool
	}{
		{tcell.KeyRune, 'q', false},
		{tcell.KeyEscape, 0, false},
		{tcell.KeyCtrlC, 0, false},
		{tcell.KeyRune, 'x', true},
		{tcell.KeyLeft, 0, true},
	}
	for _, tt := range tests {
		if got := a.handleKey(tt.key, tt.r); got != tt.want {
			t.Errorf("handleKey(%v, %q) = %v, want %v", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestHandleKeySelectsOnTick(t *testing.T) {
	a, _ := newTestApp(t)

	a.handleKey(tcell.KeyRune, '3')
	if !a.anim.Controller().Dispersed() {
		t.Fatal("selection must wait for the tick goroutine")
	}
	out := a.anim.Tick()
	if out.Dispersed || out.Shape.Kind != shape.KindSaturn {
		t.Errorf("after tick: shape=%v dispersed=%v", out.Shape, out.Dispersed)
	}

	a.handleKey(tcell.KeyRune, '5')
	out = a.anim.Tick()
	if out.Shape != shape.Text("I Love You") {
		t.Errorf("love key selected %v", out.Shape)
	}
}

func TestHandleKeyTint(t *testing.T) {
	a, field := newTestApp(t)

	a.handleKey(tcell.KeyRune, 't')
	a.anim.Tick()
	if got := field.TintTarget().Hex(); got != palette[1].hex {
		t.Errorf("tint target = %s, want %s", got, palette[1].hex)
	}

	for i := 0; i < len(palette)-1; i++ {
		a.handleKey(tcell.KeyRune, 't')
	}
	a.anim.Tick()
	if got := field.TintTarget().Hex(); got != palette[0].hex {
		t.Errorf("palette should wrap, tint target = %s", got)
	}
}

func TestHandleKeySteersSyntheticHand(t *testing.T) {
	a, _ := newTestApp(t)

	a.handleKey(tcell.KeyRune, 'v')
	if a.synth.Pose() != landmark.PoseVSign {
		t.Fatalf("pose = %v", a.synth.Pose())
	}

	a.handleKey(tcell.KeyRune, 'p')
	a.synth.SetJitter(0)
	var c gesture.Classifier
	f, _ := a.synth.Acquire(context.Background())
	c.Classify(f.Primary())
	a.handleKey(tcell.KeyRight, 0)
	f, _ = a.synth.Acquire(context.Background())
	if r := c.Classify(f.Primary()); r.PointingDelta <= 0 {
		t.Errorf("right arrow should move the hand right, delta %v", r.PointingDelta)
	}

	// Replay mode has no synthetic hand
	a.synth = nil
	a.handleKey(tcell.KeyRune, 'h')
	a.handleKey(tcell.KeyUp, 0)
}

func TestRunHeadless(t *testing.T) {
	a, _ := newTestApp(t)
	a.anim.Post(func() { a.anim.Controller().Select(shape.Shape{Kind: shape.KindFlower}) })

	var buf bytes.Buffer
	out := runHeadless(a.anim, 5, time.Millisecond, &buf)
	if out.Tick != 5 {
		t.Errorf("ran %d ticks, want 5", out.Tick)
	}
	for _, want := range []string{"ticks=5", "shape=flower", "dispersed=false"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("summary %q missing %q", buf.String(), want)
		}
	}
}
