package inject

import (
	"fmt"
	"reflect"

	"github.com/avenalabs/keel/outcome"
)

// CheckError is a single validation failure: the identifier that could not
// be resolved plus the underlying construction error.
type CheckError struct {
	Service reflect.Type
	Err     error
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *CheckError) Unwrap() error { return e.Err }

// Validate attempts to resolve every registered identifier and reports the
// combined outcome. Each failure is captured and appended — the sweep never
// stops early and never panics. On success the result holds the number of
// registrations verified; on failure it holds an outcome.AggregateError
// whose members are *CheckError values in snapshot order.
//
// Validation runs the same read path as New: factory functions are really
// invoked and constructors really run, so factories with observable side
// effects fire once per Validate call. The singleton cache is not touched
// and the store is not mutated.
func (r *Resolver) Validate() outcome.Result[int] {
	snap := r.store.Snapshot()

	var failures []error
	for _, key := range snap.keys {
		if err := r.check(key); err != nil {
			failures = append(failures, &CheckError{Service: key, Err: err})
		}
	}

	if len(failures) == 0 {
		return outcome.OK(snap.Len())
	}
	return outcome.Fail[int](&outcome.AggregateError{
		Message: fmt.Sprintf("inject: %d of %d registrations failed validation", len(failures), snap.Len()),
		Errs:    failures,
	})
}

// check resolves one identifier, converting any escaped panic into an
// ErrConstruction so the sweep can continue.
func (r *Resolver) check(key reflect.Type) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: panic resolving %s: %v", ErrConstruction, key, rec)
		}
	}()

	_, err = r.Resolve(key)
	return err
}
