// Package landmark supplies hand-landmark frames to the acquisition loop
// The detector itself is external; sources here replay, synthesize or refuse
package landmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/lixenwraith/particle-morph/gesture"
)

// ErrSourceUnavailable is returned by sources whose capture could not be initialized
var ErrSourceUnavailable = errors.New("landmark source unavailable")

// Source produces at most one frame per call; implementations honor ctx cancellation
type Source interface {
	Acquire(ctx context.Context) (Frame, error)
}

// Frame is one detector result, zero or more hands
type Frame struct {
	Hands []gesture.HandSnapshot
}

// Primary returns the first detected hand, or nil when none
func (f Frame) Primary() *gesture.HandSnapshot {
	if len(f.Hands) == 0 {
		return nil
	}
	return &f.Hands[0]
}

// Unavailable is a source that always fails, standing in for a denied or missing camera
type Unavailable struct {
	Reason string
}

func (u Unavailable) Acquire(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	if u.Reason == "" {
		return Frame{}, ErrSourceUnavailable
	}
	return Frame{}, fmt.Errorf("%w: %s", ErrSourceUnavailable, u.Reason)
}
