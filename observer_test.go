package fsm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserver_BasicInterface(t *testing.T) {
	var _ Observer = NewTestObserver()
	var _ ExtendedObserver = NewTestObserver()
	var _ ExtendedObserver = &BaseObserver{}
}

func TestObserver_Transitions(t *testing.T) {
	observer := NewTestObserver()
	m := newPersonMachine(t, WithObserver(observer))
	definePersonEvents(t, m)

	require.NoError(t, m.Fire("slap"))
	require.Len(t, observer.Transitions, 1)

	e := observer.Transitions[0]
	assert.Equal(t, "slap", e.Name)
	assert.Equal(t, State("asleep"), e.From)
	assert.Equal(t, State("awake"), e.To)
	assert.Empty(t, observer.Rejections)
}

func TestObserver_Rejections(t *testing.T) {
	observer := NewTestObserver()
	m := newPersonMachine(t)
	m.AddObserver(observer)
	definePersonEvents(t, m)

	_ = m.Fire("bludgeon")
	require.Len(t, observer.Rejections, 1)
	assert.ErrorIs(t, observer.Rejections[0].Err, ErrTransitionGuard)
	assert.Equal(t, "bludgeon", observer.Rejections[0].Event.Name)

	boom := errors.New("boom")
	require.NoError(t, m.Before("slap", func(*Event) error { return boom }))
	_ = m.Fire("slap")
	require.Len(t, observer.Rejections, 2)
	assert.ErrorIs(t, observer.Rejections[1].Err, boom)
	assert.Empty(t, observer.Transitions)
}

func TestObserver_AfterHookError(t *testing.T) {
	observer := NewTestObserver()
	m := newPersonMachine(t, WithObserver(observer))
	definePersonEvents(t, m)

	boom := errors.New("boom")
	require.NoError(t, m.After("slap", func(*Event) error { return boom }))

	assert.Error(t, m.Fire("slap"))
	assert.Len(t, observer.Transitions, 1)
	require.Len(t, observer.Errors, 1)
	assert.ErrorIs(t, observer.Errors[0], boom)
}

type panickingObserver struct {
	TestObserver
}

func (o *panickingObserver) OnTransition(e *Event) {
	panic("observer failure")
}

func TestObserver_PanicIsContained(t *testing.T) {
	bad := &panickingObserver{}
	good := NewTestObserver()
	m := newPersonMachine(t, WithObserver(bad), WithObserver(good))
	definePersonEvents(t, m)

	assert.NotPanics(t, func() {
		require.NoError(t, m.Fire("slap"))
	})
	assert.Len(t, good.Transitions, 1)
	require.Len(t, bad.Errors, 1)
	assert.Contains(t, bad.Errors[0].Error(), "observer panic in OnTransition")
}

func TestObserverManager_Remove(t *testing.T) {
	om := NewObserverManager()
	a := NewTestObserver()
	b := NewTestObserver()
	om.AddObserver(a)
	om.AddObserver(b)
	assert.Equal(t, 2, om.Len())

	om.RemoveObserver(a)
	assert.Equal(t, 1, om.Len())

	om.NotifyTransition(&Event{Name: "slap"})
	assert.Empty(t, a.Transitions)
	assert.Len(t, b.Transitions, 1)
}
