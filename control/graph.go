package control

import "github.com/lixenwraith/particle-morph/engine/fsm"

// Events routed into the control machine
const (
	EventSelect fsm.EventType = iota + 1
	EventGather
)

// Machine state names
const (
	StateDispersed = "Dispersed"
	StateAssembled = "Assembled"
)

// graphConfig is the control state graph
// Assembled only exits through the idle tick transition, so its exit marks the idle episode
const graphConfig = `
initial = "Dispersed"

[states.Dispersed]
on_enter = [{ action = "Scatter" }]
transitions = [
  { trigger = "Select", target = "Assembled" },
  { trigger = "Gather", target = "Assembled" },
]

[states.Assembled]
on_enter = [{ action = "Assemble" }]
on_exit = [{ action = "MarkIdle" }]
transitions = [
  { trigger = "Tick", target = "Dispersed", guard = "IdleExpired" },
]
`

func (c *Controller) register(m *fsm.Machine[*Controller]) {
	m.RegisterEvent("Select", EventSelect)
	m.RegisterEvent("Gather", EventGather)

	m.RegisterAction("Scatter", func(c *Controller, _ any) { c.scatter() })
	m.RegisterAction("Assemble", func(c *Controller, _ any) { c.assemble() })
	m.RegisterAction("MarkIdle", func(c *Controller, _ any) {
		c.idleTriggered = true
		c.emit(CueDisperse)
	})

	m.RegisterGuard("IdleExpired", func(c *Controller) bool { return c.idleExpired() })
}
