package landmark

import (
	"context"
	"sync"

	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/vmath"
)

// Pose selects the synthetic hand shape
type Pose uint8

const (
	PoseAbsent Pose = iota
	PoseFist
	PoseVSign
	PosePointing
	PoseFourFingers
)

func (p Pose) String() string {
	switch p {
	case PoseAbsent:
		return "absent"
	case PoseFist:
		return "fist"
	case PoseVSign:
		return "v-sign"
	case PosePointing:
		return "pointing"
	case PoseFourFingers:
		return "four"
	}
	return "unknown"
}

func (p Pose) fingers() gesture.Fingers {
	switch p {
	case PoseVSign:
		return gesture.FingersVSign
	case PosePointing:
		return gesture.FingersPointing
	case PoseFourFingers:
		return gesture.FingersFour
	}
	return gesture.FingersFist
}

// Synthetic hand placement limits, normalized frame units
const (
	syntheticWristY    = 0.85
	syntheticScaleMin  = 0.06
	syntheticScaleMax  = 0.4
	syntheticScaleInit = 0.15
	syntheticJitter    = 0.002
)

// SyntheticSource emits a pose-driven hand, steered by keyboard in the preview and by tests
type SyntheticSource struct {
	mu     sync.Mutex
	pose   Pose
	x      float64
	scale  float64
	jitter float64
	rng    *vmath.FastRand
}

// NewSyntheticSource starts absent with the hand centered
func NewSyntheticSource(rng *vmath.FastRand) *SyntheticSource {
	return &SyntheticSource{
		pose:   PoseAbsent,
		x:      0.5,
		scale:  syntheticScaleInit,
		jitter: syntheticJitter,
		rng:    rng,
	}
}

// SetPose changes the emitted pose
func (s *SyntheticSource) SetPose(p Pose) {
	s.mu.Lock()
	s.pose = p
	s.mu.Unlock()
}

// Pose returns the emitted pose
func (s *SyntheticSource) Pose() Pose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose
}

// Move shifts the wrist horizontally, keeping the hand inside the frame
func (s *SyntheticSource) Move(dx float64) {
	s.mu.Lock()
	s.x = vmath.Clamp(s.x+dx, 0.25, 0.75)
	s.mu.Unlock()
}

// Grow changes apparent hand size, which drives zoom while four fingers are up
func (s *SyntheticSource) Grow(ds float64) {
	s.mu.Lock()
	s.scale = vmath.Clamp(s.scale+ds, syntheticScaleMin, syntheticScaleMax)
	s.mu.Unlock()
}

// SetJitter sets per-coordinate noise amplitude; zero gives exact poses
func (s *SyntheticSource) SetJitter(j float64) {
	s.mu.Lock()
	s.jitter = j
	s.mu.Unlock()
}

func (s *SyntheticSource) Acquire(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pose == PoseAbsent {
		return Frame{}, nil
	}

	h := gesture.Pose(s.pose.fingers(), s.x, syntheticWristY, s.scale)
	if s.jitter > 0 {
		for i := range h {
			// A still pointing hand must not drift into rotation
			if !(s.pose == PosePointing && i == gesture.IndexTip) {
				h[i].X += s.rng.Range(-s.jitter, s.jitter)
			}
			h[i].Y += s.rng.Range(-s.jitter, s.jitter)
		}
	}
	return Frame{Hands: []gesture.HandSnapshot{h}}, nil
}
