package morph

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/particle-morph/vmath"
)

func TestSetTargetsKeepsCurrent(t *testing.T) {
	f := NewField(4)
	start := []vmath.Vec3F{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}, {X: 3, Y: 3, Z: 3}, {X: 4, Y: 4, Z: 4}}
	if err := f.Reset(start); err != nil {
		t.Fatal(err)
	}
	if err := f.SetTargets(make([]vmath.Vec3F, 4)); err != nil {
		t.Fatal(err)
	}
	for i, p := range f.Positions() {
		if p != start[i] {
			t.Errorf("current %d changed by SetTargets: %+v", i, p)
		}
	}
}

func TestSetTargetsSizeMismatch(t *testing.T) {
	f := NewField(4)
	if err := f.SetTargets(make([]vmath.Vec3F, 3)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestStepConvergesMonotonically(t *testing.T) {
	f := NewField(64)
	rng := vmath.NewFastRand(21)
	start := make([]vmath.Vec3F, 64)
	target := make([]vmath.Vec3F, 64)
	for i := range start {
		// bounded initial distance: |start-target| <= 10
		target[i] = vmath.Vec3F{X: rng.Range(-5, 5), Y: rng.Range(-5, 5), Z: rng.Range(-5, 5)}
		start[i] = vmath.V3FAdd(target[i], vmath.Vec3F{X: rng.Range(-5, 5), Y: rng.Range(-5, 5), Z: rng.Range(-5, 5)})
	}
	f.Reset(start)
	f.SetTargets(target)

	prev := make([]float64, 64)
	for i := range prev {
		prev[i] = vmath.V3FDist(start[i], target[i])
	}

	for tick := 0; tick < 300; tick++ {
		f.Step()
		for i, p := range f.Positions() {
			d := vmath.V3FDist(p, target[i])
			if d > prev[i] {
				t.Fatalf("tick %d particle %d: distance grew %v -> %v", tick, i, prev[i], d)
			}
			prev[i] = d
		}
	}
	if m := f.MaxDistance(); m >= 1e-6 {
		t.Errorf("not converged after 300 ticks: max distance %v", m)
	}
}

func TestStepNeverReachesExactly(t *testing.T) {
	f := NewField(1)
	f.Reset([]vmath.Vec3F{{X: 1}})
	f.SetTargets([]vmath.Vec3F{{}})
	f.Step()
	if got := f.Positions()[0].X; math.Abs(got-0.94) > 1e-12 {
		t.Errorf("after one step x = %v, want 0.94", got)
	}
}

func TestExpansionSmoothing(t *testing.T) {
	f := NewField(1)
	f.SetExpansionTarget(2.0)
	f.Step()
	if got, want := f.Expansion(), 1.0+(2.0-1.0)*0.08; math.Abs(got-want) > 1e-12 {
		t.Errorf("expansion after one step = %v, want %v", got, want)
	}
	for i := 0; i < 400; i++ {
		f.Step()
	}
	if math.Abs(f.Expansion()-2.0) > 1e-9 {
		t.Errorf("expansion did not converge: %v", f.Expansion())
	}
}

func TestTintIndependentOfExpansion(t *testing.T) {
	f := NewField(1)
	if err := f.SetTintHex("00ff00"); err != nil {
		t.Fatal(err)
	}
	startExpansion := f.Expansion()
	for i := 0; i < 400; i++ {
		f.Step()
	}
	if f.Expansion() != startExpansion {
		t.Errorf("tint change moved expansion: %v", f.Expansion())
	}
	want, _ := colorful.Hex("#00ff00")
	if d := f.Tint().DistanceRgb(want); d > 1e-6 {
		t.Errorf("tint did not converge, distance %v", d)
	}
}

func TestSetTintHex(t *testing.T) {
	f := NewField(1)
	for _, in := range []string{"#ff8800", "ff8800", "#f80"} {
		if err := f.SetTintHex(in); err != nil {
			t.Errorf("SetTintHex(%q): %v", in, err)
		}
	}
	if err := f.SetTintHex("not-a-color"); err == nil {
		t.Error("expected error for invalid hex")
	}
	want, _ := colorful.Hex("#ff8800")
	if d := f.TintTarget().DistanceRgb(want); d > 1e-9 {
		t.Errorf("invalid hex replaced the tint target, distance %v", d)
	}
}

func TestSetTintTargetClamps(t *testing.T) {
	f := NewField(1)
	f.SetTintTarget(colorful.Color{R: 1.5, G: -0.2, B: 0.5})
	got := f.TintTarget()
	if got != (colorful.Color{R: 1, G: 0, B: 0.5}) {
		t.Errorf("TintTarget = %+v, want clamped {1 0 0.5}", got)
	}
	for i := 0; i < 400; i++ {
		f.Step()
	}
	if !f.Tint().IsValid() {
		t.Errorf("tint left the gamut: %+v", f.Tint())
	}
}
