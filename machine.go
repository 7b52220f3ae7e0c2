package fsm

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// Config declares the states of a machine and where it starts
type Config struct {
	States       []State
	InitialState State
}

// Option configures a machine
type Option func(*FSM)

// WithLogger sets the logger for the machine
func WithLogger(logger *slog.Logger) Option {
	return func(m *FSM) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithObserver adds an observer to the machine
func WithObserver(observer Observer) Option {
	return func(m *FSM) {
		m.observers.AddObserver(observer)
	}
}

// WithContext sets the context passed to hooks by Fire
func WithContext(ctx context.Context) Option {
	return func(m *FSM) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// FSM is a finite state machine. It is not safe for concurrent use; hooks
// may fire further events on the same machine.
type FSM struct {
	id       string
	states   []State
	declared map[State]bool
	initial  State
	current  State

	table     *transitionTable
	hooks     *hookRegistry
	observers *ObserverManager

	logger *slog.Logger
	ctx    context.Context
}

// New creates a machine in its initial state
func New(cfg Config, opts ...Option) (*FSM, error) {
	if len(cfg.States) == 0 {
		return nil, NewConfigurationError("FSM", "no states declared")
	}

	declared := make(map[State]bool, len(cfg.States))
	for _, s := range cfg.States {
		switch {
		case s == "":
			return nil, NewConfigurationError("FSM", "state names cannot be empty")
		case s == Wildcard:
			return nil, NewConfigurationError("FSM", fmt.Sprintf("'%s' is reserved and cannot be a state", Wildcard))
		case declared[s]:
			return nil, NewConfigurationError("FSM", fmt.Sprintf("state '%s' declared twice", s))
		}
		declared[s] = true
	}

	if !declared[cfg.InitialState] {
		return nil, NewConfigurationError("FSM", fmt.Sprintf("initial state '%s' is not declared", cfg.InitialState))
	}

	m := &FSM{
		id:        uuid.New().String(),
		states:    append([]State(nil), cfg.States...),
		declared:  declared,
		initial:   cfg.InitialState,
		current:   cfg.InitialState,
		table:     newTransitionTable(),
		hooks:     newHookRegistry(),
		observers: NewObserverManager(),
		logger:    slog.Default(),
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("fsm", m.id)

	return m, nil
}

// MustNew is like New but panics on error
func MustNew(cfg Config, opts ...Option) *FSM {
	m, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// ID returns the unique id of the machine
func (m *FSM) ID() string {
	return m.id
}

// CurrentState returns the current state
func (m *FSM) CurrentState() State {
	return m.current
}

// InitialState returns the state the machine was created in
func (m *FSM) InitialState() State {
	return m.initial
}

// Is reports whether the machine is in state
func (m *FSM) Is(state State) bool {
	return m.current == state
}

// SetState moves the machine to state without checking guards or running
// hooks. It is meant for resets and tests.
func (m *FSM) SetState(state State) error {
	if !m.declared[state] {
		return NewStateNotFoundError(state)
	}
	m.logger.Debug("state set", "from", m.current, "to", state)
	m.current = state
	return nil
}

// States returns the declared states in declaration order
func (m *FSM) States() []State {
	return append([]State(nil), m.states...)
}

// HasState reports whether state is declared
func (m *FSM) HasState(state State) bool {
	return m.declared[state]
}

// Events returns the defined event names in definition order
func (m *FSM) Events() []string {
	return m.table.names()
}

// Event returns the definition of the named event
func (m *FSM) Event(name string) (EventDefinition, bool) {
	def, ok := m.table.get(name)
	if !ok {
		return EventDefinition{}, false
	}
	out := *def
	out.Sources = slices.Clone(def.Sources)
	return out, true
}

// Can reports whether the named event may fire from the current state
func (m *FSM) Can(name string) bool {
	def, ok := m.table.get(name)
	return ok && def.Permits(m.current)
}

// AvailableEvents returns the events that may fire from the current state,
// in definition order
func (m *FSM) AvailableEvents() []string {
	var names []string
	for _, name := range m.table.order {
		if m.table.events[name].Permits(m.current) {
			names = append(names, name)
		}
	}
	return names
}

// AddObserver adds an observer to the machine
func (m *FSM) AddObserver(observer Observer) {
	m.observers.AddObserver(observer)
}

// RemoveObserver removes an observer from the machine
func (m *FSM) RemoveObserver(observer Observer) {
	m.observers.RemoveObserver(observer)
}

// DefineEvent adds a named event to the machine. Nothing is registered
// when an error is returned.
func (m *FSM) DefineEvent(name string, opts *EventOptions) error {
	if name == "" {
		return NewDefinitionError(ErrCodeNoName, "", "")
	}
	if !IsValidName(name) {
		return NewDefinitionError(ErrCodeBadName, name, "")
	}

	def, err := compileEvent(name, opts, m.declared)
	if err != nil {
		return err
	}

	if _, exists := m.table.get(name); exists {
		return NewDefinitionError(ErrCodeEventExists, name, "")
	}

	m.table.add(def)
	m.logger.Debug("event defined", "event", name, "sources", def.Sources, "any", def.Any, "destination", def.Destination)
	return nil
}

// Before registers a hook that runs before the named event changes the
// state. Use Wildcard to run it for every event, including ones defined
// later.
func (m *FSM) Before(name string, hook HookFunc) error {
	return m.addHook(name, Before, hook)
}

// After registers a hook that runs after the named event changed the
// state. Use Wildcard to run it for every event, including ones defined
// later.
func (m *FSM) After(name string, hook HookFunc) error {
	return m.addHook(name, After, hook)
}

func (m *FSM) addHook(name string, phase Phase, hook HookFunc) error {
	if hook == nil {
		return newBadOptionsError(name, "%s hook cannot be nil", phase)
	}
	if name != Wildcard {
		if _, exists := m.table.get(name); !exists {
			return NewDefinitionError(ErrCodeEventDoesNotExist, name, "")
		}
	}

	m.hooks.add(name, phase, hook)
	m.logger.Debug("hook registered", "event", name, "phase", phase.String())
	return nil
}

// Fire triggers the named event with the machine's base context
func (m *FSM) Fire(name string, args ...any) error {
	return m.FireContext(m.ctx, name, args...)
}

// FireContext triggers the named event. The guard is checked first; if it
// passes, the before hooks run, the state changes and the after hooks run.
// A failing before hook leaves the state unchanged. A failing after hook is
// returned but the state change stands.
func (m *FSM) FireContext(ctx context.Context, name string, args ...any) error {
	def, ok := m.table.get(name)
	if !ok {
		return NewDefinitionError(ErrCodeEventDoesNotExist, name, "")
	}

	e := newEvent(ctx, m, def, args)

	if !def.Permits(m.current) {
		err := NewGuardError(name, m.current, slices.Clone(def.Sources))
		m.logger.Debug("event rejected", "event", name, "state", m.current, "error", err)
		m.observers.NotifyRejected(e, err)
		return err
	}

	if err := m.hooks.run(e, Before); err != nil {
		m.logger.Debug("event cancelled", "event", name, "state", m.current, "error", err)
		m.observers.NotifyRejected(e, err)
		return err
	}

	m.current = def.Destination
	m.logger.Debug("transition", "event", name, "from", e.From, "to", e.To, "id", e.ID)

	afterErr := m.hooks.run(e, After)
	m.observers.NotifyTransition(e)
	if afterErr != nil {
		m.logger.Debug("after hook failed", "event", name, "error", afterErr)
		m.observers.NotifyError(e, afterErr)
		return afterErr
	}

	return nil
}
