package fsm

// State is one token from a machine's declared vocabulary
type State string

// StateSet is the source or destination of a transition as written by the
// caller. It is either absent (the zero value), a single state or a list of
// states. The distinction matters: a destination must be a single state,
// even a one element list is rejected.
type StateSet struct {
	states []State
	list   bool
}

// AnyState permits a transition from every declared state
var AnyState = Single(Wildcard)

// Single creates a set holding exactly one state
func Single(state State) StateSet {
	return StateSet{states: []State{state}}
}

// Set creates a list of states
func Set(states ...State) StateSet {
	return StateSet{states: append([]State{}, states...), list: true}
}

// IsZero reports whether the set was left unspecified
func (s StateSet) IsZero() bool {
	return s.states == nil && !s.list
}

// IsList reports whether the set was given in list form
func (s StateSet) IsList() bool {
	return s.list
}

// IsAny reports whether the set contains the wildcard
func (s StateSet) IsAny() bool {
	for _, state := range s.states {
		if state == Wildcard {
			return true
		}
	}
	return false
}

// States returns a copy of the states in the set
func (s StateSet) States() []State {
	return append([]State(nil), s.states...)
}
