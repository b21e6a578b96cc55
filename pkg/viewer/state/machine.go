package state

import (
	"errors"
	"fmt"
)

// AppState is the application-wide render gate.
type AppState int

// Application states
const (
	Idle AppState = iota
	DrawTerrain
)

func (s AppState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case DrawTerrain:
		return "DrawTerrain"
	default:
		return fmt.Sprintf("AppState(%d)", int(s))
	}
}

// ErrIllegalTransition is returned for any transition other than
// Idle→DrawTerrain and DrawTerrain→Idle.
var ErrIllegalTransition = errors.New("illegal state transition")

// Transition records one state change.
type Transition struct {
	From, To AppState
}

// Machine is the two-state machine gating the render pass. Idle is both the
// initial and the resting state.
type Machine struct {
	current AppState
	history []Transition
}

// NewMachine returns a machine in Idle.
func NewMachine() *Machine {
	return &Machine{current: Idle}
}

// Current returns the active state.
func (m *Machine) Current() AppState {
	return m.current
}

// Set moves the machine to next.
func (m *Machine) Set(next AppState) error {
	legal := (m.current == Idle && next == DrawTerrain) ||
		(m.current == DrawTerrain && next == Idle)
	if !legal {
		return fmt.Errorf("%w: %v -> %v", ErrIllegalTransition, m.current, next)
	}
	m.history = append(m.history, Transition{From: m.current, To: next})
	m.current = next
	return nil
}

// History returns every transition made so far.
func (m *Machine) History() []Transition {
	return append([]Transition(nil), m.history...)
}

// Count returns how many times the machine entered state s.
func (m *Machine) Count(s AppState) int {
	n := 0
	for _, t := range m.history {
		if t.To == s {
			n++
		}
	}
	return n
}
