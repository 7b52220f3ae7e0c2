package fsm

import "fmt"

// Observer is notified of the outcome of every firing. Observers cannot
// affect a transition; use hooks for that.
type Observer interface {
	// OnTransition is called after the machine has moved to e.To
	OnTransition(e *Event)

	// OnRejected is called when an event was refused by the guard or a before hook
	OnRejected(e *Event, err error)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnError is called when an after hook fails or an observer panics
	OnError(e *Event, err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnTransition implements the required Observer method
func (o *BaseObserver) OnTransition(e *Event) {}

// OnRejected implements the required Observer method
func (o *BaseObserver) OnRejected(e *Event, err error) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(e *Event, err error) {}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	return len(om.observers)
}

// NotifyTransition notifies all observers of a completed transition
func (om *ObserverManager) NotifyTransition(e *Event) {
	for _, observer := range om.snapshot() {
		om.guard(observer, e, "OnTransition", func() {
			observer.OnTransition(e)
		})
	}
}

// NotifyRejected notifies all observers of a refused event
func (om *ObserverManager) NotifyRejected(e *Event, err error) {
	for _, observer := range om.snapshot() {
		om.guard(observer, e, "OnRejected", func() {
			observer.OnRejected(e, err)
		})
	}
}

// NotifyError notifies all extended observers of an error
func (om *ObserverManager) NotifyError(e *Event, err error) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { recover() }()
				extObs.OnError(e, err)
			}()
		}
	}
}

func (om *ObserverManager) snapshot() []Observer {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}

// guard runs fn and reports a panic to the observer itself if it can take it
func (om *ObserverManager) guard(observer Observer, e *Event, method string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if extObs, ok := observer.(ExtendedObserver); ok {
				func() {
					defer func() { recover() }()
					extObs.OnError(e, fmt.Errorf("observer panic in %s: %v", method, r))
				}()
			}
		}
	}()
	fn()
}
