// Package morph owns the particle position buffers and the smoothed render scalars
package morph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// ErrSizeMismatch is returned when a target set does not match the particle count
var ErrSizeMismatch = errors.New("target size mismatch")

// Field holds index-aligned current and target buffers for a fixed particle count
// current[i] always approaches target[i]; particles have no identity beyond index
type Field struct {
	current []vmath.Vec3F
	target  []vmath.Vec3F

	expansionCurrent float64
	expansionTarget  float64

	tintCurrent colorful.Color
	tintTarget  colorful.Color

	morphRate     float64
	expansionRate float64
	tintRate      float64
}

// NewField allocates n particles at the origin with default expansion and tint
func NewField(n int) *Field {
	tint, _ := colorful.Hex(parameter.TintDefault)
	return &Field{
		current:          make([]vmath.Vec3F, n),
		target:           make([]vmath.Vec3F, n),
		expansionCurrent: parameter.ExpansionDefault,
		expansionTarget:  parameter.ExpansionDefault,
		tintCurrent:      tint,
		tintTarget:       tint,
		morphRate:        parameter.MorphRate,
		expansionRate:    parameter.ExpansionRate,
		tintRate:         parameter.TintRate,
	}
}

// Len returns the particle count
func (f *Field) Len() int {
	return len(f.current)
}

// Reset places particles directly on points, current and target alike
func (f *Field) Reset(points []vmath.Vec3F) error {
	if len(points) != len(f.target) {
		return fmt.Errorf("%w: got %d, want %d", ErrSizeMismatch, len(points), len(f.target))
	}
	copy(f.current, points)
	copy(f.target, points)
	return nil
}

// SetTargets replaces the target buffer wholesale; current positions are untouched
func (f *Field) SetTargets(points []vmath.Vec3F) error {
	if len(points) != len(f.target) {
		return fmt.Errorf("%w: got %d, want %d", ErrSizeMismatch, len(points), len(f.target))
	}
	copy(f.target, points)
	return nil
}

// Step advances every smoothed quantity one tick toward its target
func (f *Field) Step() {
	rate := f.morphRate
	for i := range f.current {
		f.current[i] = vmath.V3FApproach(f.current[i], f.target[i], rate)
	}
	f.expansionCurrent = vmath.Lerp(f.expansionCurrent, f.expansionTarget, f.expansionRate)
	f.tintCurrent = f.tintCurrent.BlendRgb(f.tintTarget, f.tintRate)
}

// Positions returns the live current buffer; callers must not retain or modify it across ticks
func (f *Field) Positions() []vmath.Vec3F {
	return f.current
}

// Targets returns the live target buffer, read-only
func (f *Field) Targets() []vmath.Vec3F {
	return f.target
}

// MaxDistance returns the largest |current-target| across particles
func (f *Field) MaxDistance() float64 {
	var m float64
	for i := range f.current {
		if d := vmath.V3FDist(f.current[i], f.target[i]); d > m {
			m = d
		}
	}
	return m
}

func (f *Field) Expansion() float64 {
	return f.expansionCurrent
}

func (f *Field) ExpansionTarget() float64 {
	return f.expansionTarget
}

func (f *Field) SetExpansionTarget(v float64) {
	f.expansionTarget = v
}

func (f *Field) Tint() colorful.Color {
	return f.tintCurrent
}

func (f *Field) TintTarget() colorful.Color {
	return f.tintTarget
}

// SetTintTarget clamps c into the RGB gamut
func (f *Field) SetTintTarget(c colorful.Color) {
	f.tintTarget = c.Clamped()
}

// SetTintHex parses "#rrggbb" (or "#rgb") and sets it as the tint target
func (f *Field) SetTintHex(hex string) error {
	c, err := ParseTint(hex)
	if err != nil {
		return err
	}
	f.SetTintTarget(c)
	return nil
}

// ParseTint accepts "#rrggbb", "#rgb" and either without the leading '#'
func ParseTint(hex string) (colorful.Color, error) {
	s := strings.TrimSpace(hex)
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	if len(s) == 4 {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("tint %q: %w", hex, err)
	}
	return c, nil
}
