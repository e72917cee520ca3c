package inject

import "errors"

var (
	// ErrNotRegistered is returned when no registration exists for the
	// requested service identifier.
	ErrNotRegistered = errors.New("inject: service not registered")

	// ErrInvalidRegistration is returned when a registration is rejected at
	// write time, e.g. a nil instance or a nil factory function.
	ErrInvalidRegistration = errors.New("inject: invalid registration")

	// ErrInvalidRegistrationShape is returned when a stored registration is
	// neither an instance, a factory, nor a type token. Unreachable through
	// the Add functions; the resolver checks rather than assumes.
	ErrInvalidRegistrationShape = errors.New("inject: invalid registration shape")

	// ErrNoValidConstructor is returned when a type registration's concrete
	// type cannot be instantiated (interface, func, or channel kinds).
	ErrNoValidConstructor = errors.New("inject: no valid constructor")

	// ErrTypeMismatch is returned when a stored or constructed value does not
	// satisfy the service identifier it was registered under.
	ErrTypeMismatch = errors.New("inject: type mismatch")

	// ErrConstruction is returned when a factory function fails or panics
	// during resolution.
	ErrConstruction = errors.New("inject: construction failed")
)
