package engine

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/particle-morph/control"
	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/morph"
	"github.com/lixenwraith/particle-morph/shape"
	"github.com/lixenwraith/particle-morph/vmath"
)

// Output is the per-tick state read by a renderer
// Positions aliases the field buffer and is valid until the next Tick
type Output struct {
	Positions []vmath.Vec3F
	Expansion float64
	Tint      colorful.Color

	// RotationVelocity applies only while Rotating; otherwise the renderer uses its own idle rotation
	RotationVelocity float64
	Rotating         bool

	Label     gesture.Label
	Shape     shape.Shape
	Dispersed bool
	Tick      uint64
}

// Animator runs one cooperative tick: consume a landmark result, classify, control, step
// All mutation of control state and particle buffers happens inside Tick
type Animator struct {
	field      *morph.Field
	ctrl       *control.Controller
	classifier gesture.Classifier
	clock      TimeProvider
	results    <-chan Delivery
	commands   chan func()

	tick uint64
}

// commandQueueSize bounds commands posted between two ticks
const commandQueueSize = 64

// NewAnimator wires the tick pipeline; results may be nil when no acquisition runs
func NewAnimator(field *morph.Field, ctrl *control.Controller, clock TimeProvider, results <-chan Delivery) *Animator {
	return &Animator{
		field:    field,
		ctrl:     ctrl,
		clock:    clock,
		results:  results,
		commands: make(chan func(), commandQueueSize),
	}
}

// Tick never blocks; at most one delivered frame is consumed per call
func (a *Animator) Tick() Output {
	now := a.clock.Now()

drain:
	for {
		select {
		case fn := <-a.commands:
			fn()
		default:
			break drain
		}
	}

	select {
	case d := <-a.results:
		a.Apply(d.Frame.Primary(), now)
	default:
	}

	a.ctrl.Tick(now)
	a.field.Step()
	a.tick++

	st := a.ctrl.State()
	return Output{
		Positions:        a.field.Positions(),
		Expansion:        a.field.Expansion(),
		Tint:             a.field.Tint(),
		RotationVelocity: st.RotationVelocity,
		Rotating:         st.Rotating,
		Label:            st.Label,
		Shape:            st.Shape,
		Dispersed:        st.Dispersed,
		Tick:             a.tick,
	}
}

// Apply classifies a hand snapshot (nil for absent) and feeds the controller
// Exposed for callers that inject frames synchronously, such as tests and the headless runner
func (a *Animator) Apply(h *gesture.HandSnapshot, now time.Time) {
	r := a.classifier.Classify(h)
	a.ctrl.Apply(r, now)
}

// Post queues fn to run at the start of the next Tick, on the tick goroutine
// Returns false when the queue is full and fn was dropped
func (a *Animator) Post(fn func()) bool {
	select {
	case a.commands <- fn:
		return true
	default:
		return false
	}
}

// Controller returns the control state machine for explicit commands
func (a *Animator) Controller() *control.Controller {
	return a.ctrl
}

// Ticks returns the number of completed ticks
func (a *Animator) Ticks() uint64 {
	return a.tick
}
