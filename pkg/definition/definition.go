// Package definition loads state machine definitions from YAML documents or
// generic maps and turns them into machines.
//
//	states: [asleep, awake, standing]
//	initial: asleep
//	events:
//	  - name: slap
//	    from: asleep
//	    to: awake
//	  - name: lob
//	    from: "*"
//	    to: asleep
package definition

import (
	"fmt"

	"github.com/anggasct/fsm"
)

// Definition is the declarative form of a machine
type Definition struct {
	States  []string    `yaml:"states" mapstructure:"states"`
	Initial string      `yaml:"initial" mapstructure:"initial"`
	Events  []EventSpec `yaml:"events" mapstructure:"events"`
}

// EventSpec declares one event
type EventSpec struct {
	Name string   `yaml:"name" mapstructure:"name"`
	From Endpoint `yaml:"from" mapstructure:"from"`
	To   Endpoint `yaml:"to" mapstructure:"to"`
}

// Endpoint holds a transition source or destination as written: absent, a
// single value or a list
type Endpoint struct {
	values []string
	list   bool
	set    bool
}

// Scalar creates an endpoint holding a single value
func Scalar(value string) Endpoint {
	return Endpoint{values: []string{value}, set: true}
}

// List creates an endpoint holding a list of values
func List(values ...string) Endpoint {
	return Endpoint{values: append([]string{}, values...), list: true, set: true}
}

// IsSet reports whether the endpoint was given
func (e Endpoint) IsSet() bool {
	return e.set
}

// Values returns the values of the endpoint
func (e Endpoint) Values() []string {
	return append([]string(nil), e.values...)
}

// StateSet converts the endpoint to its fsm form
func (e Endpoint) StateSet() fsm.StateSet {
	if !e.set {
		return fsm.StateSet{}
	}
	states := make([]fsm.State, len(e.values))
	for i, v := range e.values {
		states[i] = fsm.State(v)
	}
	if e.list {
		return fsm.Set(states...)
	}
	return fsm.Single(states[0])
}

// Options returns the fsm options of the event. Missing endpoints stay
// absent so that DefineEvent reports them.
func (s EventSpec) Options() *fsm.EventOptions {
	return &fsm.EventOptions{
		Transition: &fsm.TransitionOptions{
			From: s.From.StateSet(),
			To:   s.To.StateSet(),
		},
	}
}

// Config returns the machine configuration of the definition
func (d *Definition) Config() fsm.Config {
	states := make([]fsm.State, len(d.States))
	for i, s := range d.States {
		states[i] = fsm.State(s)
	}
	return fsm.Config{
		States:       states,
		InitialState: fsm.State(d.Initial),
	}
}

// Build creates a machine from the definition and defines its events in
// order. The first failing event is reported with its position.
func (d *Definition) Build(opts ...fsm.Option) (*fsm.FSM, error) {
	m, err := fsm.New(d.Config(), opts...)
	if err != nil {
		return nil, err
	}

	for i, ev := range d.Events {
		if err := m.DefineEvent(ev.Name, ev.Options()); err != nil {
			return nil, fmt.Errorf("event #%d (%s): %w", i, ev.Name, err)
		}
	}

	return m, nil
}
