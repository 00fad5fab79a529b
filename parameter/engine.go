package parameter

import "time"

// Frame and acquisition cadence
const (
	// FrameRateDefault is the render tick rate
	FrameRateDefault = 60
	FrameRateMin     = 10
	FrameRateMax     = 240

	// AcquireInterval is the landmark polling period, independent of the frame rate
	AcquireInterval    = 100 * time.Millisecond
	AcquireIntervalMin = 10 * time.Millisecond
	// AcquireTimeout bounds a single landmark acquisition attempt
	AcquireTimeout = 2 * time.Second

	// IdleAutoRotation is the renderer's own rotation (rad/frame) when no pointing gesture is active
	IdleAutoRotation = 0.002
)
