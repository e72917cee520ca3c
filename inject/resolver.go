package inject

import (
	"fmt"
	"reflect"
)

// Resolver produces instances from the registrations of exactly one Store.
// It owns a singleton cache that grows monotonically until the resolver is
// discarded; the bound store is never rebound.
//
// Like Store, Resolver does not lock. Two sequential Singleton calls from
// the same goroutine return the same object; concurrent callers must
// synchronize externally.
type Resolver struct {
	store      *Store
	singletons map[reflect.Type]any
}

// NewResolver creates a Resolver bound to store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{
		store:      store,
		singletons: make(map[reflect.Type]any),
	}
}

// Store returns the bound registration store.
func (r *Resolver) Store() *Store { return r.store }

// ── Entry points ─────────────────────────────────────────────────────────────

// New performs a fresh resolution of I. Instances are returned as-is,
// factories are invoked, and type registrations are constructed anew on
// every call. The singleton cache is never consulted.
func New[I any](r *Resolver) (I, error) {
	var zero I
	v, err := r.Resolve(typeOf[I]())
	if err != nil {
		return zero, err
	}
	out, ok := v.(I)
	if !ok {
		return zero, fmt.Errorf("%w: resolved %T does not satisfy %s", ErrTypeMismatch, v, typeOf[I]())
	}
	return out, nil
}

// Singleton resolves I once and returns the same object on every subsequent
// call. A registered instance is inherently already a singleton and is
// returned without touching the cache; otherwise the cache is consulted and,
// on a miss, New's result is stored under I for the resolver's lifetime.
func Singleton[I any](r *Resolver) (I, error) {
	var zero I
	key := typeOf[I]()

	if reg, ok := r.store.regs[key]; ok {
		if inst, isInstance := reg.(instanceRegistration); isInstance {
			out, satisfies := inst.value.(I)
			if !satisfies {
				return zero, fmt.Errorf("%w: registered instance %T does not satisfy %s", ErrTypeMismatch, inst.value, key)
			}
			return out, nil
		}
	}

	if cached, ok := r.singletons[key]; ok {
		return cached.(I), nil
	}

	out, err := New[I](r)
	if err != nil {
		return zero, err
	}
	r.singletons[key] = out
	return out, nil
}

// MustNew is like New but panics on failure. Use it where a missing or
// broken registration is a programming error.
func MustNew[I any](r *Resolver) I {
	out, err := New[I](r)
	if err != nil {
		panic(err)
	}
	return out
}

// MustSingleton is like Singleton but panics on failure.
func MustSingleton[I any](r *Resolver) I {
	out, err := Singleton[I](r)
	if err != nil {
		panic(err)
	}
	return out
}

// ── Resolution algorithm ─────────────────────────────────────────────────────

// Resolve resolves an identifier from its type token, without compile-time
// knowledge of the service type. Prefer the generic New helper; Resolve
// exists for reflective callers such as the validator.
//
// Resolution never mutates the store.
func (r *Resolver) Resolve(key reflect.Type) (any, error) {
	reg, ok := r.store.regs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}

	// The instance capability check is ordered before the factory and type
	// branches so that a registration carrying more than one candidate shape
	// would still resolve deterministically.
	switch reg := reg.(type) {
	case instanceRegistration:
		if satisfies(reflect.TypeOf(reg.value), key) {
			return reg.value, nil
		}
		return nil, fmt.Errorf("%w: registered instance %T does not satisfy %s", ErrTypeMismatch, reg.value, key)
	case factoryRegistration:
		return r.invoke(key, reg)
	case typeRegistration:
		return r.construct(key, reg.impl)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidRegistrationShape, key)
	}
}

// invoke runs a factory. A returned error or an escaped panic surfaces as
// ErrConstruction, never swallowed.
func (r *Resolver) invoke(key reflect.Type, reg factoryRegistration) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("%w: factory for %s panicked: %v", ErrConstruction, key, rec)
		}
	}()

	v, ferr := reg.produce()
	if ferr != nil {
		return nil, fmt.Errorf("%w: factory for %s: %w", ErrConstruction, key, ferr)
	}
	return v, nil
}

// construct instantiates a type registration's concrete type. Interface,
// func, and channel kinds have no usable zero construction and fail with
// ErrNoValidConstructor. The constructed value is returned as *T when *T
// satisfies the identifier and T does not.
func (r *Resolver) construct(key, impl reflect.Type) (any, error) {
	base := impl
	if base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	switch base.Kind() {
	case reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return nil, fmt.Errorf("%w: %s", ErrNoValidConstructor, impl)
	}

	ptr := reflect.New(base)
	if base.AssignableTo(key) {
		return ptr.Elem().Interface(), nil
	}
	if ptr.Type().AssignableTo(key) {
		return ptr.Interface(), nil
	}
	return nil, fmt.Errorf("%w: %s does not satisfy %s", ErrTypeMismatch, impl, key)
}

// satisfies reports whether a value of type t can be assigned to key.
func satisfies(t, key reflect.Type) bool {
	return t != nil && t.AssignableTo(key)
}
