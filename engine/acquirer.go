package engine

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/particle-morph/landmark"
	"github.com/lixenwraith/particle-morph/parameter"
)

// Delivery is one completed acquisition attempt
// Failed attempts carry Err and an empty frame, which classifies as hand absent
type Delivery struct {
	Frame landmark.Frame
	Err   error
	At    time.Time
}

// AcquirerConfig holds acquisition cadence
type AcquirerConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// DefaultAcquirerConfig returns the standard polling cadence
func DefaultAcquirerConfig() AcquirerConfig {
	return AcquirerConfig{
		Interval: parameter.AcquireInterval,
		Timeout:  parameter.AcquireTimeout,
	}
}

// AcquirerStats is a point-in-time copy of acquisition counters
type AcquirerStats struct {
	Attempts  uint64
	Failures  uint64
	Skipped   uint64
	Delivered uint64
}

// Acquirer polls a landmark source on a fixed interval with at most one attempt in flight
// Results are handed off through a single-slot channel where the newest result wins
type Acquirer struct {
	source landmark.Source
	cfg    AcquirerConfig
	clock  TimeProvider

	results chan Delivery

	inFlight atomic.Bool

	attempts  atomic.Uint64
	failures  atomic.Uint64
	skipped   atomic.Uint64
	delivered atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewAcquirer creates an acquirer; intervals below the floor are raised to it
func NewAcquirer(source landmark.Source, cfg AcquirerConfig, clock TimeProvider) *Acquirer {
	if cfg.Interval < parameter.AcquireIntervalMin {
		cfg.Interval = parameter.AcquireIntervalMin
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = parameter.AcquireTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Acquirer{
		source:   source,
		cfg:      cfg,
		clock:    clock,
		results:  make(chan Delivery, 1),
		ctx:      ctx,
		cancel:   cancel,
		stopChan: make(chan struct{}),
	}
}

// Results returns the hand-off channel read by the animator
func (a *Acquirer) Results() <-chan Delivery {
	return a.results
}

// Start begins the polling schedule
func (a *Acquirer) Start() {
	if a.running.CompareAndSwap(false, true) {
		a.wg.Add(1)
		goSafe("acquirer", a.loop)
	}
}

// Stop cancels the schedule and any outstanding attempt, then waits for both to return
func (a *Acquirer) Stop() {
	a.stopOnce.Do(func() {
		a.running.Store(false)
		close(a.stopChan)
		a.cancel()
		a.wg.Wait()
	})
}

// Trigger launches one attempt unless another is outstanding
// Returns false when the attempt was skipped; must not race with Stop
func (a *Acquirer) Trigger() bool {
	if !a.inFlight.CompareAndSwap(false, true) {
		a.skipped.Add(1)
		return false
	}
	a.wg.Add(1)
	goSafe("acquire", func() {
		defer a.wg.Done()
		defer a.inFlight.Store(false)
		a.attempt()
	})
	return true
}

// Stats returns acquisition counters
func (a *Acquirer) Stats() AcquirerStats {
	return AcquirerStats{
		Attempts:  a.attempts.Load(),
		Failures:  a.failures.Load(),
		Skipped:   a.skipped.Load(),
		Delivered: a.delivered.Load(),
	}
}

func (a *Acquirer) loop() {
	defer a.wg.Done()

	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	a.Trigger()
	for {
		select {
		case <-a.stopChan:
			return
		case <-ticker.C:
			a.Trigger()
		}
	}
}

func (a *Acquirer) attempt() {
	a.attempts.Add(1)

	ctx, cancel := context.WithTimeout(a.ctx, a.cfg.Timeout)
	defer cancel()

	frame, err := a.source.Acquire(ctx)
	if err != nil {
		// Cancellation during Stop is not a failure worth reporting
		if a.ctx.Err() != nil {
			return
		}
		a.failures.Add(1)
		log.Printf("engine: landmark acquisition failed: %v", err)
		frame = landmark.Frame{}
	}

	a.deliver(Delivery{Frame: frame, Err: err, At: a.clock.Now()})
}

// deliver replaces any unread result with d
func (a *Acquirer) deliver(d Delivery) {
	for {
		select {
		case a.results <- d:
			a.delivered.Add(1)
			return
		default:
		}
		select {
		case <-a.results:
		default:
		}
	}
}
