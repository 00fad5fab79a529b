// Package gesture turns per-frame hand landmarks into discrete labels and continuous readings
package gesture

import (
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// fingerJoints maps each evaluated finger to its (tip, pip) landmarks; the thumb is not evaluated
var fingerJoints = [4][2]int{
	FingerIndex:  {IndexTip, IndexPIP},
	FingerMiddle: {MiddleTip, MiddlePIP},
	FingerRing:   {RingTip, RingPIP},
	FingerPinky:  {PinkyTip, PinkyPIP},
}

// IsExtended reports whether wrist→tip exceeds FingerExtendRatio × wrist→pip
func IsExtended(h *HandSnapshot, tip, pip int) bool {
	return h.Dist(Wrist, tip) > parameter.FingerExtendRatio*h.Dist(Wrist, pip)
}

// ExtendedFingers evaluates all four non-thumb fingers
func ExtendedFingers(h *HandSnapshot) Fingers {
	var f Fingers
	for i, j := range fingerJoints {
		f[i] = IsExtended(h, j[0], j[1])
	}
	return f
}

// ZoomFromHand maps apparent hand size to a clamped zoom factor
func ZoomFromHand(h *HandSnapshot) float64 {
	size := h.Dist(Wrist, MiddleMCP)
	return vmath.Clamp((size-parameter.ZoomHandOffset)*parameter.ZoomGain, parameter.ZoomMin, parameter.ZoomMax)
}

// Reading is the classifier output for one frame
type Reading struct {
	Label   Label
	Fingers Fingers

	// PointingDelta is the index-tip X change since the previous Pointing frame
	// HasDelta is false on the first frame of a pointing episode
	PointingDelta float64
	HasDelta      bool

	// Zoom is set for LabelFourFingers
	Zoom float64
}

// Absent is the reading for a frame with no hand
var Absent = Reading{Label: LabelHandAbsent}

// Classifier retains the previous index-tip X across consecutive Pointing frames
// The zero value is ready to use
type Classifier struct {
	prevIndexX float64
	hasPrev    bool
}

// Classify labels one frame; nil means no hand detected
// Coordinates are clamped to the unit square; a frame carrying NaN is classified as None
func (c *Classifier) Classify(h *HandSnapshot) Reading {
	if h == nil {
		c.Reset()
		return Absent
	}

	snap, ok := h.Sanitized()
	if !ok {
		c.Reset()
		return Reading{Label: LabelNone}
	}

	r := Reading{Fingers: ExtendedFingers(&snap)}
	r.Label = LabelFor(r.Fingers)

	switch r.Label {
	case LabelPointing:
		x := snap[IndexTip].X
		if c.hasPrev {
			r.PointingDelta = x - c.prevIndexX
			r.HasDelta = true
		}
		c.prevIndexX = x
		c.hasPrev = true
		return r
	case LabelFourFingers:
		r.Zoom = ZoomFromHand(&snap)
	}

	c.Reset()
	return r
}

// Reset forgets pointing history so the next Pointing episode starts fresh
func (c *Classifier) Reset() {
	c.prevIndexX = 0
	c.hasPrev = false
}
