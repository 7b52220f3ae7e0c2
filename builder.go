package fsm

// Chain provides a fluent interface over a machine. Every method returns the
// same chain; after the first failure the remaining calls are skipped and
// Err reports that failure.
//
//	err := m.Chain().
//		Event("rackTheBalls", fsm.Transit(fsm.Single("asleep"), "awake")).
//		Event("putOnPants", fsm.Transit(fsm.Set("awake", "sitting"), "standing")).
//		Before(fsm.Wildcard, hook).
//		Fire("rackTheBalls").
//		Fire("putOnPants").
//		Err()
type Chain struct {
	machine *FSM
	err     error
}

// Chain starts a fluent chain on the machine
func (m *FSM) Chain() *Chain {
	return &Chain{machine: m}
}

// Event defines an event, see FSM.DefineEvent
func (c *Chain) Event(name string, opts *EventOptions) *Chain {
	return c.do(func() error {
		return c.machine.DefineEvent(name, opts)
	})
}

// Before registers a before hook, see FSM.Before
func (c *Chain) Before(name string, hook HookFunc) *Chain {
	return c.do(func() error {
		return c.machine.Before(name, hook)
	})
}

// After registers an after hook, see FSM.After
func (c *Chain) After(name string, hook HookFunc) *Chain {
	return c.do(func() error {
		return c.machine.After(name, hook)
	})
}

// Fire triggers an event, see FSM.Fire
func (c *Chain) Fire(name string, args ...any) *Chain {
	return c.do(func() error {
		return c.machine.Fire(name, args...)
	})
}

// Err returns the first error encountered by the chain
func (c *Chain) Err() error {
	return c.err
}

// Machine returns the underlying machine
func (c *Chain) Machine() *FSM {
	return c.machine
}

func (c *Chain) do(fn func() error) *Chain {
	if c.err == nil {
		c.err = fn()
	}
	return c
}
