package gesture

import (
	"math"

	"github.com/lixenwraith/particle-morph/vmath"
)

// LandmarkCount is the number of points per detected hand
const LandmarkCount = 21

// Landmark indices (wrist, thumb, then four fingers × MCP/PIP/DIP/TIP)
const (
	Wrist = iota
	ThumbCMC
	ThumbMCP
	ThumbIP
	ThumbTip
	IndexMCP
	IndexPIP
	IndexDIP
	IndexTip
	MiddleMCP
	MiddlePIP
	MiddleDIP
	MiddleTip
	RingMCP
	RingPIP
	RingDIP
	RingTip
	PinkyMCP
	PinkyPIP
	PinkyDIP
	PinkyTip
)

// Landmark is a normalized frame coordinate, x and y in [0,1]
type Landmark struct {
	X, Y float64
}

// HandSnapshot is one frame of one hand
type HandSnapshot [LandmarkCount]Landmark

// Sanitized returns a copy with finite coordinates clamped into [0,1]
// ok is false if any coordinate is NaN, which has no meaningful clamp
func (h *HandSnapshot) Sanitized() (out HandSnapshot, ok bool) {
	ok = true
	for i, p := range h {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			ok = false
			continue
		}
		out[i] = Landmark{X: vmath.Clamp(p.X, 0, 1), Y: vmath.Clamp(p.Y, 0, 1)}
	}
	return out, ok
}

// Dist returns the planar distance between landmarks a and b
func (h *HandSnapshot) Dist(a, b int) float64 {
	return vmath.Hypot2(h[a].X, h[a].Y, h[b].X, h[b].Y)
}
