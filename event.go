package fsm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event describes one firing of an event. The same value is passed to every
// hook and observer involved in that firing.
type Event struct {
	// ID uniquely identifies this firing
	ID string
	// Name of the fired event
	Name string
	// From is the state the machine was in when the event fired
	From State
	// To is the destination of the event
	To State
	// Args are the extra arguments given to Fire
	Args []any
	// Machine is the machine the event fired on
	Machine *FSM
	// Timestamp is the time the event fired
	Timestamp time.Time

	ctx context.Context
}

func newEvent(ctx context.Context, m *FSM, def *EventDefinition, args []any) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Name:      def.Name,
		From:      m.current,
		To:        def.Destination,
		Args:      args,
		Machine:   m,
		Timestamp: time.Now(),
		ctx:       ctx,
	}
}

// Context returns the context the event was fired with
func (e *Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// Arg returns the i-th extra argument, or nil if there is none
func (e *Event) Arg(i int) any {
	if i < 0 || i >= len(e.Args) {
		return nil
	}
	return e.Args[i]
}
