// Package fsm provides a small finite state machine library for Go.
//
// A machine is created with a fixed set of states and an initial state.
// Events are then declared as guarded transitions from one or more source
// states (or any state) to a single destination. Firing an event checks the
// guard, runs the before hooks, moves the machine and runs the after hooks.
//
//	m, err := fsm.New(fsm.Config{
//		States:       []fsm.State{"asleep", "awake"},
//		InitialState: "asleep",
//	})
//	if err != nil {
//		return err
//	}
//	_ = m.DefineEvent("slap", fsm.Transit(fsm.Single("asleep"), "awake"))
//	_ = m.Before(fsm.Wildcard, func(e *fsm.Event) error {
//		log.Printf("%s: %s -> %s", e.Name, e.From, e.To)
//		return nil
//	})
//	err = m.Fire("slap")
package fsm

// Wildcard matches every declared state when used as a transition source
// and every event when used as a hook target.
const Wildcard = "*"
