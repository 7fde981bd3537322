// Package errs provides structured error handling for the tactical combat
// core. It enables clear communication of why a game rule refused an
// action, with full context about the state when the rule was evaluated.
package errs

import (
	"errors"
	"fmt"
)

// Code categorizes why an operation failed, per the error taxonomy in §7.
type Code string

const (
	// CodeValidation indicates an action failed its preconditions.
	// Recovered locally: the caller shows the reason and awaits new input.
	CodeValidation Code = "validation"

	// CodeEmptyTimeline indicates the battle has not ended but the
	// scheduler has no entries left. Fatal: a logic bug let a unit go
	// uncancelled or unrescheduled.
	CodeEmptyTimeline Code = "empty_timeline"

	// CodeDeadUnitOnTimeline indicates a popped entry referenced a unit
	// that is no longer alive. Fatal: indicates a missing Cancel call.
	CodeDeadUnitOnTimeline Code = "dead_unit_on_timeline"

	// CodeInvariantViolation covers out-of-bounds positions, negative HP
	// without death handling, and similar broken invariants. Fatal.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeScenarioLoad indicates a malformed scenario plan. Reported to
	// the host before battle init; the battle never starts.
	CodeScenarioLoad Code = "scenario_load"

	// CodeEventRecursionLimit indicates more than the configured number
	// of nested event publishes occurred. Fatal: surfaces infinite loops.
	CodeEventRecursionLimit Code = "event_recursion_limit"
)

// Error is a structured error carrying a Code, message, optional wrapped
// cause, and free-form metadata for diagnostic provenance.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "errs: nil error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Option configures an Error at construction time.
type Option func(*Error)

// WithMeta attaches a metadata field to the error.
func WithMeta(key string, value any) Option {
	return func(e *Error) {
		if e.Meta == nil {
			e.Meta = make(map[string]any)
		}
		e.Meta[key] = value
	}
}

// New creates an Error with the given code and message.
func New(code Code, message string, opts ...Option) *Error {
	e := &Error{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err with additional context, preserving its Code if err is
// already an *Error.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return New(CodeInvariantViolation, fmt.Sprintf("errs.Wrap called with nil: %s", message))
	}

	var inner *Error
	wrapped := &Error{Message: message, Cause: err}
	if errors.As(err, &inner) {
		wrapped.Code = inner.Code
		wrapped.Meta = copyMeta(inner.Meta)
	} else {
		wrapped.Code = CodeInvariantViolation
	}

	for _, opt := range opts {
		opt(wrapped)
	}
	return wrapped
}

// Is reports whether err carries the given Code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func copyMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
