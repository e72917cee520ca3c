// Package outcome provides a small tagged success/failure container.
//
// A Result either holds a value or holds an error — never both. It is meant
// for operations that want to report failure as data instead of returning an
// error up the stack immediately, e.g. a validation sweep that collects every
// problem before giving up. AggregateError batches several failures into one
// failure value while preserving the individual errors for errors.Is / As.
package outcome

import "fmt"

// Result is a tagged success/failure carrier.
//
//	res := outcome.OK(42)
//	if res.IsOK() { ... }
//
// The zero value is a success holding T's zero value.
type Result[T any] struct {
	value T
	err   error
}

// OK returns a successful Result holding v.
func OK[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed Result carrying err.
// A nil err produces a success holding the zero value.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Failf returns a failed Result with a formatted message.
func Failf[T any](format string, args ...any) Result[T] {
	return Result[T]{err: fmt.Errorf(format, args...)}
}

// IsOK reports whether the Result is a success.
func (r Result[T]) IsOK() bool { return r.err == nil }

// Value returns the held value. For a failed Result it is T's zero value.
func (r Result[T]) Value() T { return r.value }

// Err returns the held error, or nil for a success.
func (r Result[T]) Err() error { return r.err }

// Get unpacks the Result into Go's conventional (value, error) shape.
func (r Result[T]) Get() (T, error) { return r.value, r.err }

// ── Structured errors ────────────────────────────────────────────────────────

// Error is a failure with a human-readable message and an optional
// underlying cause.
type Error struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// AggregateError batches multiple failures into a single failure value.
type AggregateError struct {
	Message string
	Errs    []error
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("%d errors", len(e.Errs))
	}
	for _, err := range e.Errs {
		msg += "\n\t" + err.Error()
	}
	return msg
}

// Unwrap exposes the individual errors so errors.Is / errors.As descend
// into the aggregate's members.
func (e *AggregateError) Unwrap() []error { return e.Errs }
