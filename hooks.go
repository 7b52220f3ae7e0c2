package fsm

import "fmt"

// Phase identifies when a hook runs relative to the state change
type Phase int

const (
	// Before hooks run after the guard passes and before the state changes
	Before Phase = iota
	// After hooks run once the state has changed
	After
)

func (p Phase) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// HookFunc is called around a transition. Returning an error from a before
// hook cancels the transition.
type HookFunc func(e *Event) error

// hookRegistry keeps ordered hook lists per event name and phase. Hooks
// registered under Wildcard are kept in their own bucket and merged at
// dispatch time, so they also apply to events defined later.
type hookRegistry struct {
	hooks    map[string][2][]HookFunc
	wildcard [2][]HookFunc
}

func newHookRegistry() *hookRegistry {
	return &hookRegistry{
		hooks: make(map[string][2][]HookFunc),
	}
}

func (r *hookRegistry) add(name string, phase Phase, hook HookFunc) {
	if name == Wildcard {
		r.wildcard[phase] = append(r.wildcard[phase], hook)
		return
	}
	lists := r.hooks[name]
	lists[phase] = append(lists[phase], hook)
	r.hooks[name] = lists
}

// resolve returns the hooks for name followed by the wildcard hooks. The
// result is a fresh slice, so hooks added while it is being run only take
// effect on the next firing.
func (r *hookRegistry) resolve(name string, phase Phase) []HookFunc {
	specific := r.hooks[name][phase]
	out := make([]HookFunc, 0, len(specific)+len(r.wildcard[phase]))
	out = append(out, specific...)
	return append(out, r.wildcard[phase]...)
}

// run calls each hook in order and stops at the first failure. A panicking
// hook is reported as an error.
func (r *hookRegistry) run(e *Event, phase Phase) error {
	for _, hook := range r.resolve(e.Name, phase) {
		if err := safeRunHook(hook, e); err != nil {
			return NewHookError(e.Name, phase, err)
		}
	}
	return nil
}

func safeRunHook(hook HookFunc, e *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook panic: %v", r)
		}
	}()

	return hook(e)
}
