package observers

import (
	"fmt"
	"sync"

	"github.com/anggasct/fsm"
)

// ValidationObserver checks observed transitions against a set of expected
// states and allowed moves, and records every violation
type ValidationObserver struct {
	expectedStates     map[fsm.State]bool
	visitedStates      map[fsm.State]bool
	allowedTransitions map[fsm.State]map[fsm.State]bool
	violations         []string
	mutex              sync.RWMutex
}

// NewValidationObserver creates a new validation observer
func NewValidationObserver() *ValidationObserver {
	return &ValidationObserver{
		expectedStates:     make(map[fsm.State]bool),
		visitedStates:      make(map[fsm.State]bool),
		allowedTransitions: make(map[fsm.State]map[fsm.State]bool),
		violations:         make([]string, 0),
	}
}

// NewValidationObserverFor creates a validation observer that accepts exactly
// the states and transitions currently defined on m
func NewValidationObserverFor(m *fsm.FSM) *ValidationObserver {
	o := NewValidationObserver()
	states := m.States()
	for _, s := range states {
		o.AddExpectedState(s)
	}
	for _, name := range m.Events() {
		def, _ := m.Event(name)
		sources := def.Sources
		if def.Any {
			sources = states
		}
		for _, from := range sources {
			o.AddAllowedTransition(from, def.Destination)
		}
	}
	return o
}

// AddExpectedState adds an expected state
func (o *ValidationObserver) AddExpectedState(state fsm.State) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.expectedStates[state] = true
}

// AddAllowedTransition adds an allowed transition
func (o *ValidationObserver) AddAllowedTransition(from, to fsm.State) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if _, exists := o.allowedTransitions[from]; !exists {
		o.allowedTransitions[from] = make(map[fsm.State]bool)
	}
	o.allowedTransitions[from][to] = true
}

// OnTransition validates a completed transition
func (o *ValidationObserver) OnTransition(e *fsm.Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.visitedStates[e.To] = true

	if len(o.expectedStates) > 0 && !o.expectedStates[e.To] {
		o.violations = append(o.violations, fmt.Sprintf("unexpected state: %s", e.To))
	}
	if !o.allowedTransitions[e.From][e.To] {
		o.violations = append(o.violations, fmt.Sprintf("unexpected transition on %s: %s -> %s", e.Name, e.From, e.To))
	}
}

// OnRejected does nothing; a refused event never changes state
func (o *ValidationObserver) OnRejected(e *fsm.Event, err error) {}

// Violations returns the recorded violations
func (o *ValidationObserver) Violations() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return append([]string(nil), o.violations...)
}

// IsValid reports whether no violation was recorded
func (o *ValidationObserver) IsValid() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.violations) == 0
}

// UnvisitedStates returns the expected states no transition has entered yet
func (o *ValidationObserver) UnvisitedStates() []fsm.State {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	var out []fsm.State
	for s := range o.expectedStates {
		if !o.visitedStates[s] {
			out = append(out, s)
		}
	}
	return out
}

// Reset clears the recorded violations and visits
func (o *ValidationObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.visitedStates = make(map[fsm.State]bool)
	o.violations = make([]string, 0)
}
