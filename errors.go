package fsm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents specific error conditions in the state machine
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Event was declared without a name
	ErrCodeNoName
	// Event name is not a valid identifier
	ErrCodeBadName
	// Transition options are missing or malformed
	ErrCodeBadOptions
	// Event name is already taken
	ErrCodeEventExists
	// Event name is not registered
	ErrCodeEventDoesNotExist
	// Current state is not a permitted source of the event
	ErrCodeTransitionGuard
	// A before or after hook failed
	ErrCodeHookFailed
	// Machine configuration is invalid
	ErrCodeInvalidConfiguration
	// State is not part of the declared set
	ErrCodeStateNotFound
)

// Message constants shared by every machine.
const (
	NoNameMessage            = "event must have a name"
	BadNameMessage           = "event name must be a valid identifier"
	BadOptionsMessage        = "event options must define a transition with a source and a single destination"
	EventExistsMessage       = "event is already defined"
	EventDoesNotExistMessage = "event is not defined"
	TransitionGuardMessage   = "event cannot fire from the current state"
)

// Sentinel errors, matched with errors.Is against the typed errors below.
var (
	ErrNoName            = errors.New(NoNameMessage)
	ErrBadName           = errors.New(BadNameMessage)
	ErrBadOptions        = errors.New(BadOptionsMessage)
	ErrEventExists       = errors.New(EventExistsMessage)
	ErrEventDoesNotExist = errors.New(EventDoesNotExistMessage)
	ErrTransitionGuard   = errors.New(TransitionGuardMessage)
	ErrStateNotFound     = errors.New("state not found")
)

var sentinels = map[ErrorCode]error{
	ErrCodeNoName:            ErrNoName,
	ErrCodeBadName:           ErrBadName,
	ErrCodeBadOptions:        ErrBadOptions,
	ErrCodeEventExists:       ErrEventExists,
	ErrCodeEventDoesNotExist: ErrEventDoesNotExist,
	ErrCodeTransitionGuard:   ErrTransitionGuard,
	ErrCodeStateNotFound:     ErrStateNotFound,
}

// DefinitionError is returned when an event or hook cannot be registered
type DefinitionError struct {
	Code   ErrorCode
	Event  string
	Reason string
}

func (e *DefinitionError) Error() string {
	msg := "definition error"
	if sentinel, ok := sentinels[e.Code]; ok {
		msg = sentinel.Error()
	}
	if e.Event != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Event)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	return msg
}

// Unwrap exposes the sentinel for the error code
func (e *DefinitionError) Unwrap() error {
	return sentinels[e.Code]
}

// NewDefinitionError creates a new definition error
func NewDefinitionError(code ErrorCode, event string, reason string) *DefinitionError {
	return &DefinitionError{
		Code:   code,
		Event:  event,
		Reason: reason,
	}
}

func newBadOptionsError(event string, format string, args ...any) *DefinitionError {
	return NewDefinitionError(ErrCodeBadOptions, event, fmt.Sprintf(format, args...))
}

// GuardError is returned when an event fires from a state it does not permit
type GuardError struct {
	Event   string
	State   State
	Sources []State
}

func (e *GuardError) Error() string {
	sources := make([]string, len(e.Sources))
	for i, s := range e.Sources {
		sources[i] = string(s)
	}
	return fmt.Sprintf("guard rejected event '%s' in state '%s': permitted from [%s]",
		e.Event, e.State, strings.Join(sources, ", "))
}

// Unwrap returns ErrTransitionGuard
func (e *GuardError) Unwrap() error {
	return ErrTransitionGuard
}

// NewGuardError creates a new guard error
func NewGuardError(event string, state State, sources []State) *GuardError {
	return &GuardError{
		Event:   event,
		State:   state,
		Sources: sources,
	}
}

// HookError wraps an error returned (or a panic raised) by a hook
type HookError struct {
	Event       string
	Phase       Phase
	OriginalErr error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook failed for event '%s': %v", e.Phase, e.Event, e.OriginalErr)
}

func (e *HookError) Unwrap() error {
	return e.OriginalErr
}

// NewHookError creates a new hook error
func NewHookError(event string, phase Phase, err error) *HookError {
	return &HookError{
		Event:       event,
		Phase:       phase,
		OriginalErr: err,
	}
}

// StateError represents state-related errors
type StateError struct {
	Code    ErrorCode
	State   State
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state error [%s]: %s", e.State, e.Message)
}

func (e *StateError) Unwrap() error {
	return sentinels[e.Code]
}

// NewStateNotFoundError creates a new state not found error
func NewStateNotFoundError(state State) *StateError {
	return &StateError{
		Code:    ErrCodeStateNotFound,
		State:   state,
		Message: fmt.Sprintf("state '%s' not found", state),
	}
}

// ConfigurationError represents machine configuration issues
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// IsDefinitionError checks if an error is a DefinitionError
func IsDefinitionError(err error) bool {
	var target *DefinitionError
	return errors.As(err, &target)
}

// IsGuardError checks if an error is a GuardError
func IsGuardError(err error) bool {
	var target *GuardError
	return errors.As(err, &target)
}

// IsHookError checks if an error is a HookError
func IsHookError(err error) bool {
	var target *HookError
	return errors.As(err, &target)
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	switch e := err.(type) {
	case *DefinitionError:
		return e.Code
	case *StateError:
		return e.Code
	case *GuardError:
		return ErrCodeTransitionGuard
	case *HookError:
		return ErrCodeHookFailed
	case *ConfigurationError:
		return ErrCodeInvalidConfiguration
	default:
		return ErrCodeNone
	}
}

// IsStateError checks if an error is a StateError
func IsStateError(err error) bool {
	var target *StateError
	return errors.As(err, &target)
}
