package fsm

import "slices"

// EventOptions configures a new event
type EventOptions struct {
	Transition *TransitionOptions
}

// TransitionOptions describes where an event may fire from and where it leads
type TransitionOptions struct {
	From StateSet
	To   StateSet
}

// Transit creates event options for a transition from the given sources to a single destination
func Transit(from StateSet, to State) *EventOptions {
	return &EventOptions{
		Transition: &TransitionOptions{
			From: from,
			To:   Single(to),
		},
	}
}

// EventDefinition is a validated entry of the transition table
type EventDefinition struct {
	Name        string
	Sources     []State
	Any         bool
	Destination State
}

// Permits reports whether the event may fire while the machine is in state
func (d EventDefinition) Permits(state State) bool {
	if d.Any {
		return true
	}
	return slices.Contains(d.Sources, state)
}

// transitionTable maps event names to their definitions. Entries are never
// replaced or removed.
type transitionTable struct {
	events map[string]*EventDefinition
	order  []string
}

func newTransitionTable() *transitionTable {
	return &transitionTable{
		events: make(map[string]*EventDefinition),
	}
}

func (t *transitionTable) get(name string) (*EventDefinition, bool) {
	def, ok := t.events[name]
	return def, ok
}

func (t *transitionTable) add(def *EventDefinition) {
	t.events[def.Name] = def
	t.order = append(t.order, def.Name)
}

func (t *transitionTable) names() []string {
	return append([]string(nil), t.order...)
}

// compileEvent validates options against the declared states and produces a
// definition. It does not check for duplicate names.
func compileEvent(name string, opts *EventOptions, declared map[State]bool) (*EventDefinition, error) {
	if opts == nil {
		return nil, newBadOptionsError(name, "options are required")
	}
	tr := opts.Transition
	if tr == nil {
		return nil, newBadOptionsError(name, "transition is required")
	}
	if tr.From.IsZero() {
		return nil, newBadOptionsError(name, "transition source is required")
	}
	if tr.To.IsZero() {
		return nil, newBadOptionsError(name, "transition destination is required")
	}
	if tr.To.IsList() || len(tr.To.states) != 1 {
		return nil, newBadOptionsError(name, "transition destination must be a single state")
	}

	def := &EventDefinition{Name: name}
	if tr.From.IsAny() {
		def.Any = true
	} else {
		if len(tr.From.states) == 0 {
			return nil, newBadOptionsError(name, "transition source must not be empty")
		}
		for _, s := range tr.From.states {
			if !declared[s] {
				return nil, newBadOptionsError(name, "source state '%s' is not declared", s)
			}
			if !slices.Contains(def.Sources, s) {
				def.Sources = append(def.Sources, s)
			}
		}
	}

	to := tr.To.states[0]
	if !declared[to] {
		return nil, newBadOptionsError(name, "destination state '%s' is not declared", to)
	}
	def.Destination = to

	return def, nil
}
