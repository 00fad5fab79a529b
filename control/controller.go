// Package control maps classified gestures and explicit commands onto the morph field
package control

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/particle-morph/engine/fsm"
	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/morph"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/shape"
	"github.com/lixenwraith/particle-morph/vmath"
)

// Cue is a discrete feedback moment for audio or UI
type Cue uint8

const (
	CueSelect Cue = iota
	CueGather
	CueDisperse
)

func (c Cue) String() string {
	switch c {
	case CueSelect:
		return "select"
	case CueGather:
		return "gather"
	case CueDisperse:
		return "disperse"
	}
	return "unknown"
}

// Config holds controller tunables
type Config struct {
	IdleTimeout  time.Duration
	InitialShape shape.Shape
	// OnCue is called synchronously on select, gather and idle dispersal; may be nil
	OnCue func(Cue)
}

// DefaultConfig returns the standard idle timeout with galaxy as the first shape
func DefaultConfig() Config {
	return Config{
		IdleTimeout:  parameter.IdleTimeout,
		InitialShape: shape.Shape{Kind: shape.KindGalaxy},
	}
}

// Snapshot is the observable control state
type Snapshot struct {
	Shape            shape.Shape
	Label            gesture.Label
	Dispersed        bool
	IdleTriggered    bool
	Rotating         bool
	RotationVelocity float64
	ExpansionTarget  float64
}

// Controller owns the idle timer and dispersed state and issues commands to the field
// It never touches particle buffers directly; all calls must come from one goroutine
type Controller struct {
	field *morph.Field
	gen   *shape.Generator
	rng   *vmath.FastRand

	machine     *fsm.Machine[*Controller]
	dispersedID fsm.StateID
	scratch     []vmath.Vec3F

	shape shape.Shape
	label gesture.Label

	now          time.Time
	lastTick     time.Time
	lastHandSeen time.Time
	// idleAnchor is the later of lastHandSeen and the last explicit selection
	idleAnchor    time.Time
	idleTimeout   time.Duration
	idleTriggered bool

	rotating         bool
	rotationVelocity float64

	onCue   func(Cue)
	lastErr error
}

// New builds a controller in the Dispersed state; the field is reset onto the initial scatter
func New(field *morph.Field, gen *shape.Generator, rng *vmath.FastRand, cfg Config, now time.Time) (*Controller, error) {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = parameter.IdleTimeout
	}

	c := &Controller{
		field:        field,
		gen:          gen,
		rng:          rng,
		scratch:      make([]vmath.Vec3F, field.Len()),
		shape:        cfg.InitialShape,
		label:        gesture.LabelHandAbsent,
		now:          now,
		lastTick:     now,
		lastHandSeen: now,
		idleAnchor:   now,
		idleTimeout:  cfg.IdleTimeout,
		onCue:        cfg.OnCue,
	}

	m := fsm.NewMachine[*Controller]()
	c.register(m)
	if err := m.LoadConfig([]byte(graphConfig)); err != nil {
		return nil, fmt.Errorf("control graph: %w", err)
	}
	id, ok := m.GetStateID(StateDispersed)
	if !ok {
		return nil, fmt.Errorf("control graph: missing %s state", StateDispersed)
	}
	c.dispersedID = id
	c.machine = m

	if err := m.Init(c, m.InitialStateID); err != nil {
		return nil, fmt.Errorf("control init: %w", err)
	}
	// Start scattered in place rather than flying in from the origin
	if err := field.Reset(c.scratch); err != nil {
		return nil, err
	}
	return c, nil
}

// Select sets the shape and assembles it immediately, regardless of gesture state
// Re-selecting the current shape re-randomizes it
func (c *Controller) Select(s shape.Shape) error {
	c.shape = s
	c.lastErr = nil
	c.idleAnchor = c.now

	if c.Dispersed() {
		c.machine.HandleEvent(c, EventSelect)
	} else {
		c.assemble()
	}
	c.emit(CueSelect)
	return c.lastErr
}

// SelectID parses a selection identifier and selects it
func (c *Controller) SelectID(id string) error {
	s, err := shape.ParseShape(id)
	if err != nil {
		return err
	}
	return c.Select(s)
}

// SetTint sets the target tint from a hex string
func (c *Controller) SetTint(hex string) error {
	return c.field.SetTintHex(hex)
}

// Apply consumes one classified frame
func (c *Controller) Apply(r gesture.Reading, now time.Time) {
	c.now = now
	c.label = r.Label

	if r.Label != gesture.LabelHandAbsent {
		c.lastHandSeen = now
		if now.After(c.idleAnchor) {
			c.idleAnchor = now
		}
		c.idleTriggered = false
	}

	if r.Label != gesture.LabelPointing {
		c.rotating = false
		c.rotationVelocity = 0
	}

	switch r.Label {
	case gesture.LabelVSign:
		if c.machine.HandleEvent(c, EventGather) {
			c.emit(CueGather)
		}
	case gesture.LabelPointing:
		c.rotating = true
		if r.HasDelta {
			c.rotationVelocity = r.PointingDelta * parameter.RotationGain
		} else {
			c.rotationVelocity = 0
		}
	case gesture.LabelFourFingers:
		c.field.SetExpansionTarget(r.Zoom)
	}
}

// Tick advances the controller clock and applies any due idle transition
func (c *Controller) Tick(now time.Time) {
	dt := now.Sub(c.lastTick)
	if dt < 0 {
		dt = 0
	}
	c.now = now
	c.lastTick = now
	c.machine.Update(c, dt)
}

// Dispersed reports whether particles are in the scatter state
func (c *Controller) Dispersed() bool {
	return c.machine.ActiveState() == c.dispersedID
}

// Shape returns the last selected shape
func (c *Controller) Shape() shape.Shape {
	return c.shape
}

// LastHandSeen returns the timestamp of the most recent non-absent frame
func (c *Controller) LastHandSeen() time.Time {
	return c.lastHandSeen
}

// State returns the observable control state
func (c *Controller) State() Snapshot {
	return Snapshot{
		Shape:            c.shape,
		Label:            c.label,
		Dispersed:        c.Dispersed(),
		IdleTriggered:    c.idleTriggered,
		Rotating:         c.rotating,
		RotationVelocity: c.rotationVelocity,
		ExpansionTarget:  c.field.ExpansionTarget(),
	}
}

func (c *Controller) idleExpired() bool {
	return c.label == gesture.LabelHandAbsent &&
		!c.idleTriggered &&
		c.now.Sub(c.idleAnchor) >= c.idleTimeout
}

func (c *Controller) scatter() {
	shape.Disperse(c.scratch, c.rng)
	c.field.SetTargets(c.scratch)
}

// assemble fills targets for the current shape; an empty text shape keeps previous targets
func (c *Controller) assemble() {
	ok, err := c.gen.Fill(c.scratch, c.shape, c.rng)
	if err != nil {
		c.lastErr = err
		log.Printf("control: generate %v: %v", c.shape, err)
		return
	}
	if !ok {
		log.Printf("control: %v produced no points, keeping previous targets", c.shape)
		return
	}
	c.field.SetTargets(c.scratch)
}

func (c *Controller) emit(cue Cue) {
	if c.onCue != nil {
		c.onCue(cue)
	}
}
