package fsm

import (
	"strings"
	"testing"
	"time"
)

type recorder struct {
	log  []string
	open bool
}

const (
	evGo EventType = iota + 1
	evBack
)

const testGraph = `
initial = "Idle"

[states.Idle]
on_enter = [{ action = "Log", arg = "enter:Idle" }]
on_exit = [{ action = "Log", arg = "exit:Idle" }]
transitions = [
  { trigger = "Go", target = "Walk" },
]

[states.Moving]
on_enter = [{ action = "Log", arg = "enter:Moving" }]
on_exit = [{ action = "Log", arg = "exit:Moving" }]
transitions = [
  { trigger = "Back", target = "Idle" },
]

[states.Walk]
parent = "Moving"
on_enter = [{ action = "Log", arg = "enter:Walk" }]
on_exit = [{ action = "Log", arg = "exit:Walk" }]
transitions = [
  { trigger = "Tick", target = "Run", guard = "Open" },
]

[states.Run]
parent = "Moving"
on_enter = [{ action = "Log", arg = "enter:Run" }]
on_exit = [{ action = "Log", arg = "exit:Run" }]
`

func newTestMachine(t *testing.T) *Machine[*recorder] {
	t.Helper()
	m := NewMachine[*recorder]()
	m.RegisterAction("Log", func(r *recorder, args any) {
		r.log = append(r.log, args.(string))
	})
	m.RegisterGuard("Open", func(r *recorder) bool { return r.open })
	m.RegisterEvent("Go", evGo)
	m.RegisterEvent("Back", evBack)
	if err := m.LoadConfig([]byte(testGraph)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return m
}

func TestInitEntersInitialState(t *testing.T) {
	m := newTestMachine(t)
	r := &recorder{}
	if err := m.Init(r, m.InitialStateID); err != nil {
		t.Fatal(err)
	}
	if got := m.ActiveStateName(); got != "Idle" {
		t.Errorf("active = %s, want Idle", got)
	}
	if got := strings.Join(r.log, ","); got != "enter:Idle" {
		t.Errorf("log = %s", got)
	}
}

func TestHierarchicalEnterExitOrder(t *testing.T) {
	m := newTestMachine(t)
	r := &recorder{}
	m.Init(r, m.InitialStateID)
	r.log = nil

	if !m.HandleEvent(r, evGo) {
		t.Fatal("Go not handled in Idle")
	}
	if got := strings.Join(r.log, ","); got != "exit:Idle,enter:Moving,enter:Walk" {
		t.Errorf("Idle->Walk log = %s", got)
	}

	// Guarded tick transition stays put until the guard opens
	r.log = nil
	m.Update(r, 10*time.Millisecond)
	if m.ActiveStateName() != "Walk" || len(r.log) != 0 {
		t.Fatalf("guarded tick fired: %s %v", m.ActiveStateName(), r.log)
	}
	if m.TimeInState() != 10*time.Millisecond {
		t.Errorf("time in state = %v", m.TimeInState())
	}

	r.open = true
	m.Update(r, 10*time.Millisecond)
	if got := strings.Join(r.log, ","); got != "exit:Walk,enter:Run" {
		t.Errorf("Walk->Run log = %s (sibling transition must not exit parent)", got)
	}
	if m.TimeInState() != 0 {
		t.Errorf("time in state not reset: %v", m.TimeInState())
	}

	// Back is declared on the parent and bubbles up from Run
	r.log = nil
	if !m.HandleEvent(r, evBack) {
		t.Fatal("Back did not bubble to Moving")
	}
	if got := strings.Join(r.log, ","); got != "exit:Run,exit:Moving,enter:Idle" {
		t.Errorf("Run->Idle log = %s", got)
	}
}

func TestUnhandledEvent(t *testing.T) {
	m := newTestMachine(t)
	r := &recorder{}
	m.Init(r, m.InitialStateID)
	if m.HandleEvent(r, evBack) {
		t.Error("Back handled in Idle")
	}
	if m.HandleEvent(r, EventTick) {
		t.Error("tick must not be routed as an event")
	}
}

func TestIsIn(t *testing.T) {
	m := newTestMachine(t)
	r := &recorder{}
	m.Init(r, m.InitialStateID)
	m.HandleEvent(r, evGo)

	moving, _ := m.GetStateID("Moving")
	idle, _ := m.GetStateID("Idle")
	if !m.IsIn(moving) || !m.IsIn(StateRoot) {
		t.Error("parent chain not active")
	}
	if m.IsIn(idle) {
		t.Error("Idle reported active")
	}
}

func TestResetReentersInitial(t *testing.T) {
	m := newTestMachine(t)
	r := &recorder{}
	m.Init(r, m.InitialStateID)
	m.HandleEvent(r, evGo)
	r.log = nil

	if err := m.Reset(r); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(r.log, ","); got != "exit:Walk,exit:Moving,enter:Idle" {
		t.Errorf("reset log = %s", got)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		graph string
	}{
		{"unknown action", `initial = "A"
[states.A]
on_enter = [{ action = "Nope" }]`},
		{"unknown target", `initial = "A"
[states.A]
transitions = [{ trigger = "Tick", target = "B" }]`},
		{"unknown trigger", `initial = "A"
[states.A]
[states.B]
[[states.A.transitions]]
trigger = "Jump"
target = "B"`},
		{"unknown guard", `initial = "A"
[states.A]
transitions = [{ trigger = "Tick", target = "A", guard = "Nope" }]`},
		{"unknown parent", `initial = "A"
[states.A]
parent = "Ghost"`},
		{"missing initial", `initial = "Z"
[states.A]`},
	}
	for _, tt := range tests {
		m := NewMachine[*recorder]()
		if err := m.LoadConfig([]byte(tt.graph)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
