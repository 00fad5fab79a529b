package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/particle-morph/parameter"
)

// FrameLoop drives the animator at a fixed frame rate with drift correction
// The onFrame callback runs on the loop goroutine after each tick
type FrameLoop struct {
	animator *Animator
	onFrame  func(Output)

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time

	tickCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewFrameLoop creates a loop at fps frames per second, clamped to the supported range
func NewFrameLoop(animator *Animator, fps int, onFrame func(Output)) *FrameLoop {
	fps = max(parameter.FrameRateMin, min(parameter.FrameRateMax, fps))
	return &FrameLoop{
		animator:     animator,
		onFrame:      onFrame,
		tickInterval: time.Second / time.Duration(fps),
		stopChan:     make(chan struct{}),
	}
}

// Start begins the frame loop
func (fl *FrameLoop) Start() {
	if fl.running.CompareAndSwap(false, true) {
		fl.wg.Add(1)
		goSafe("frame loop", fl.loop)
	}
}

// Stop halts the loop and waits for the current frame to finish
func (fl *FrameLoop) Stop() {
	fl.stopOnce.Do(func() {
		if fl.running.CompareAndSwap(true, false) {
			close(fl.stopChan)
			fl.wg.Wait()
		}
	})
}

// Interval returns the frame period
func (fl *FrameLoop) Interval() time.Duration {
	return fl.tickInterval
}

// TickCount returns completed frames
func (fl *FrameLoop) TickCount() uint64 {
	return fl.tickCount.Load()
}

func (fl *FrameLoop) loop() {
	defer fl.wg.Done()

	fl.nextTickDeadline = time.Now().Add(fl.tickInterval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-fl.stopChan:
			return
		default:
		}

		now := time.Now()
		if !now.Before(fl.nextTickDeadline) {
			out := fl.animator.Tick()
			if fl.onFrame != nil {
				fl.onFrame(out)
			}
			fl.tickCount.Add(1)

			fl.nextTickDeadline = fl.nextTickDeadline.Add(fl.tickInterval)
			// Skip frames rather than bursting after a stall
			if now.Sub(fl.nextTickDeadline) > fl.tickInterval*2 {
				fl.nextTickDeadline = now.Add(fl.tickInterval)
			}
		}

		sleep := time.Until(fl.nextTickDeadline)
		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-fl.stopChan:
			return
		}
	}
}
