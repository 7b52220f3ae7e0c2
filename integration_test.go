package fsm_test

import (
	"testing"

	"github.com/anggasct/fsm"
	"github.com/anggasct/fsm/pkg/definition"
	"github.com/anggasct/fsm/pkg/observers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A single machine shared across definitions, resets and firings.
func TestIntegration_SharedMachine(t *testing.T) {
	m, err := fsm.New(fsm.Config{
		States:       []fsm.State{"asleep", "awake", "standing", "sitting", "lying"},
		InitialState: "asleep",
	})
	require.NoError(t, err)

	before := 0
	after := 0
	err = m.Chain().
		Event("slap", fsm.Transit(fsm.Single("asleep"), "awake")).
		Event("bludgeon", fsm.Transit(fsm.Set("standing", "sitting"), "lying")).
		Event("drug", fsm.Transit(fsm.Set("awake", "standing", "sitting", "lying"), "asleep")).
		Before(fsm.Wildcard, func(*fsm.Event) error { before++; return nil }).
		After(fsm.Wildcard, func(*fsm.Event) error { after++; return nil }).
		Err()
	require.NoError(t, err)

	// definitions made later still pick up the wildcard hooks
	require.NoError(t, m.DefineEvent("rackTheBalls", fsm.Transit(fsm.Single("asleep"), "awake")))
	require.NoError(t, m.DefineEvent("putOnPants", fsm.Transit(fsm.Set("awake", "sitting", "lying"), "standing")))

	validator := observers.NewValidationObserverFor(m)
	m.AddObserver(validator)

	err = m.Chain().Fire("rackTheBalls").Fire("putOnPants").Err()
	require.NoError(t, err)
	assert.Equal(t, 2, before)
	assert.Equal(t, 2, after)
	assert.Equal(t, fsm.State("standing"), m.CurrentState())

	require.NoError(t, m.Fire("bludgeon"))
	require.NoError(t, m.Fire("drug"))
	assert.Equal(t, fsm.State("asleep"), m.CurrentState())

	assert.ErrorIs(t, m.Fire("bludgeon"), fsm.ErrTransitionGuard)
	assert.Equal(t, 4, before, "rejected events do not run hooks")
	assert.Equal(t, fsm.State("asleep"), m.CurrentState())

	assert.True(t, validator.IsValid(), "violations: %v", validator.Violations())
}

func TestIntegration_DefinitionWithHooks(t *testing.T) {
	def, err := definition.Parse([]byte(`
states: [green, yellow, red]
initial: red
events:
  - name: go
    from: red
    to: green
  - name: slow
    from: green
    to: yellow
  - name: stop
    from: [green, yellow]
    to: red
  - name: reset
    from: "*"
    to: red
`))
	require.NoError(t, err)

	m, err := def.Build()
	require.NoError(t, err)

	var trail []string
	require.NoError(t, m.After(fsm.Wildcard, func(e *fsm.Event) error {
		trail = append(trail, string(e.To))
		return nil
	}))

	for _, name := range []string{"go", "slow", "stop", "go", "reset"} {
		require.NoError(t, m.Fire(name), name)
	}
	assert.Equal(t, []string{"green", "yellow", "red", "green", "red"}, trail)
	assert.ErrorIs(t, m.Fire("slow"), fsm.ErrTransitionGuard)
}
