package fsm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_Context(t *testing.T) {
	e := &Event{}
	assert.Equal(t, context.Background(), e.Context())
}

func TestEvent_Args(t *testing.T) {
	e := &Event{Args: []any{"a", 1}}
	assert.Equal(t, "a", e.Arg(0))
	assert.Equal(t, 1, e.Arg(1))
	assert.Nil(t, e.Arg(2))
	assert.Nil(t, e.Arg(-1))
}

func TestEvent_UniquePerFiring(t *testing.T) {
	m := newPersonMachine(t)
	definePersonEvents(t, m)

	var ids []string
	require.NoError(t, m.Before(Wildcard, func(e *Event) error {
		ids = append(ids, e.ID)
		return nil
	}))
	require.NoError(t, m.After(Wildcard, func(e *Event) error {
		ids = append(ids, e.ID)
		return nil
	}))

	require.NoError(t, m.Fire("slap"))
	require.NoError(t, m.Fire("drug"))

	require.Len(t, ids, 4)
	assert.Equal(t, ids[0], ids[1], "before and after hooks share the event")
	assert.Equal(t, ids[2], ids[3])
	assert.NotEqual(t, ids[0], ids[2])
}
