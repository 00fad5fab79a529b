package gesture

// Synthetic hand geometry, in units of hand scale (wrist→middle MCP)
// Fingers point toward -Y (up in frame coordinates)
var (
	poseLateral = [4]float64{-0.25, 0, 0.25, 0.5}

	// joint offsets from MCP along the finger axis
	poseExtended = [3]float64{0.40, 0.65, 0.85} // PIP, DIP, TIP
	poseFolded   = [3]float64{0.30, 0.15, -0.10}
)

var fingerMCP = [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

// Pose builds a snapshot with the wrist at (cx, cy), the given fingers extended and
// scale as the wrist→middle-MCP distance; used by synthetic sources and tests
func Pose(f Fingers, cx, cy, scale float64) HandSnapshot {
	var h HandSnapshot
	h[Wrist] = Landmark{X: cx, Y: cy}

	// thumb tucked across the palm
	for i, off := range [4][2]float64{{-0.35, -0.2}, {-0.45, -0.45}, {-0.35, -0.65}, {-0.2, -0.75}} {
		h[ThumbCMC+i] = Landmark{X: cx + off[0]*scale, Y: cy + off[1]*scale}
	}

	for k, mcp := range fingerMCP {
		x := cx + poseLateral[k]*scale
		baseY := cy - scale
		h[mcp] = Landmark{X: x, Y: baseY}

		joints := poseFolded
		if f[k] {
			joints = poseExtended
		}
		for j, off := range joints {
			h[mcp+1+j] = Landmark{X: x, Y: baseY - off*scale}
		}
	}
	return h
}

// Common poses
var (
	FingersVSign    = Fingers{true, true, false, false}
	FingersPointing = Fingers{true, false, false, false}
	FingersFour     = Fingers{true, true, true, true}
	FingersFist     = Fingers{}
)
