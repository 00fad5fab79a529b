package fsm

// RootConfig is the top-level TOML graph description
type RootConfig struct {
	InitialState string                  `toml:"initial"`
	States       map[string]*StateConfig `toml:"states"`
}

// StateConfig is a single state definition
type StateConfig struct {
	Parent      string             `toml:"parent,omitempty"`
	OnEnter     []ActionConfig     `toml:"on_enter,omitempty"`
	OnUpdate    []ActionConfig     `toml:"on_update,omitempty"`
	OnExit      []ActionConfig     `toml:"on_exit,omitempty"`
	Transitions []TransitionConfig `toml:"transitions,omitempty"`
}

// TransitionConfig is a transition definition
type TransitionConfig struct {
	Trigger string `toml:"trigger"`         // registered event name or "Tick"
	Target  string `toml:"target"`          // target state name
	Guard   string `toml:"guard,omitempty"` // registered guard name
}

// ActionConfig is an action reference with optional string argument
type ActionConfig struct {
	Action string `toml:"action"`
	Arg    string `toml:"arg,omitempty"`
}
