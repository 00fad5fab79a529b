package parameter

import "time"

// Hand landmark classification
const (
	// FingerExtendRatio: a finger is extended when wrist→tip exceeds this multiple of wrist→pip
	FingerExtendRatio = 1.1

	// Zoom mapping from hand size (wrist→middle MCP, normalized frame units)
	ZoomHandOffset = 0.05
	ZoomGain       = 8.0
	ZoomMin        = 0.2
	ZoomMax        = 2.5

	// RotationGain converts per-frame index-tip X delta to rotation velocity (rad/frame)
	RotationGain = 15.0
)

// Control timing
const (
	// IdleTimeout is the hand-absence duration after which an assembled shape disperses
	IdleTimeout = 2500 * time.Millisecond
)
