package export

import (
	"fmt"
	"sync"
)

// State is a step of one export run.
type State int

const (
	Idle State = iota
	ServerStarting
	WaitingForReady
	Rendering
	Capturing
	Done
	Failed
)

var stateNames = [...]string{"idle", "server-starting", "waiting-for-ready", "rendering", "capturing", "done", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// The browser path walks every state. The compiler path has no server and
// goes straight from Idle to Rendering (writing the source) and Capturing (compiling).
var transitions = map[State][]State{
	Idle:            {ServerStarting, Rendering, Failed},
	ServerStarting:  {WaitingForReady, Failed},
	WaitingForReady: {Rendering, Failed},
	Rendering:       {Capturing, Failed},
	Capturing:       {Done, Failed},
}

// Machine tracks the state of one export run. It is safe for concurrent use.
type Machine struct {
	mu      sync.Mutex
	state   State
	history []State
}

// NewMachine returns a machine in Idle.
func NewMachine() *Machine {
	return &Machine{state: Idle, history: []State{Idle}}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// History returns every state visited, in order.
func (m *Machine) History() []State {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]State, len(m.history))
	copy(out, m.history)
	return out
}

// To moves to next, or returns ErrIllegalTransition.
func (m *Machine) To(next State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, allowed := range transitions[m.state] {
		if allowed == next {
			m.state = next
			m.history = append(m.history, next)
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, m.state, next)
}

// Fail moves to Failed from any non-terminal state and returns err unchanged.
func (m *Machine) Fail(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.state.Terminal() {
		m.state = Failed
		m.history = append(m.history, Failed)
	}
	return err
}
