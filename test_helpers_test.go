package fsm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const initialState State = "asleep"

// newPersonMachine creates the machine used throughout the tests
func newPersonMachine(t *testing.T, opts ...Option) *FSM {
	t.Helper()
	m, err := New(Config{
		States:       []State{"asleep", "awake", "standing", "sitting", "lying"},
		InitialState: initialState,
	}, opts...)
	require.NoError(t, err)
	return m
}

// TestObserver records every notification it receives
type TestObserver struct {
	Transitions []*Event
	Rejections  []RejectEvent
	Errors      []error
}

type RejectEvent struct {
	Event *Event
	Err   error
}

func NewTestObserver() *TestObserver {
	return &TestObserver{}
}

func (o *TestObserver) OnTransition(e *Event) {
	o.Transitions = append(o.Transitions, e)
}

func (o *TestObserver) OnRejected(e *Event, err error) {
	o.Rejections = append(o.Rejections, RejectEvent{Event: e, Err: err})
}

func (o *TestObserver) OnError(e *Event, err error) {
	o.Errors = append(o.Errors, err)
}

// counter returns a hook that counts its calls
func counter(n *int) HookFunc {
	return func(*Event) error {
		*n++
		return nil
	}
}
