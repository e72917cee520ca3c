package inject

import (
	"fmt"
	"reflect"
)

// Store maps service identifiers to registrations. A later registration for
// the same identifier silently replaces the earlier one.
//
// Store does not lock: concurrent writers, or a write racing a resolution,
// must be synchronized by the caller.
type Store struct {
	regs map[reflect.Type]registration

	// order preserves first-insertion order for snapshots; an overwrite
	// keeps the key's original position.
	order []reflect.Type
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{regs: make(map[reflect.Type]registration)}
}

// Len returns the number of registered identifiers.
func (s *Store) Len() int { return len(s.regs) }

// Has reports whether an identifier is registered.
func (s *Store) Has(key reflect.Type) bool {
	_, ok := s.regs[key]
	return ok
}

// put is the single overwrite operation every Add function funnels into.
func (s *Store) put(key reflect.Type, reg registration) {
	if _, exists := s.regs[key]; !exists {
		s.order = append(s.order, key)
	}
	s.regs[key] = reg
}

// ── Registration operations ──────────────────────────────────────────────────

// AddType registers I as its own concrete type. I must be instantiable —
// checked at resolution time, not here.
//
//	inject.AddType[SystemClock](store)
func AddType[I any](s *Store) error {
	key := typeOf[I]()
	s.put(key, typeRegistration{impl: key})
	return nil
}

// AddTypeOf registers a concrete implementation type T for identifier I.
// T satisfying I is checked at resolution time, not here.
//
//	inject.AddTypeOf[Clock, SystemClock](store)
func AddTypeOf[I any, T any](s *Store) error {
	s.put(typeOf[I](), typeRegistration{impl: typeOf[T]()})
	return nil
}

// AddInstance registers a ready-made value for identifier I.
// A nil value is rejected with ErrInvalidRegistration.
func AddInstance[I any](s *Store, value I) error {
	return addInstance(s, typeOf[I](), value)
}

// AddInstanceOf registers a ready-made value of type T for identifier I.
// T satisfying I is checked at resolution time.
func AddInstanceOf[I any, T any](s *Store, value T) error {
	return addInstance(s, typeOf[I](), value)
}

func addInstance(s *Store, key reflect.Type, value any) error {
	if isNil(value) {
		return fmt.Errorf("%w: nil instance for %s", ErrInvalidRegistration, key)
	}
	s.put(key, instanceRegistration{value: value})
	return nil
}

// AddFactory registers a zero-argument producer for identifier I. The
// function is invoked on every New resolution; only Singleton caches its
// result. A nil function is rejected with ErrInvalidRegistration.
func AddFactory[I any](s *Store, fn func() (I, error)) error {
	if fn == nil {
		return fmt.Errorf("%w: nil factory for %s", ErrInvalidRegistration, typeOf[I]())
	}
	s.put(typeOf[I](), factoryRegistration{
		produce: func() (any, error) { return fn() },
	})
	return nil
}

// AddFactoryOf registers a producer returning concrete type T for
// identifier I. T satisfying I is checked at resolution time.
func AddFactoryOf[I any, T any](s *Store, fn func() (T, error)) error {
	if fn == nil {
		return fmt.Errorf("%w: nil factory for %s", ErrInvalidRegistration, typeOf[I]())
	}
	s.put(typeOf[I](), factoryRegistration{
		produce: func() (any, error) { return fn() },
	})
	return nil
}

// isNil reports whether value is nil, including typed nil pointers, maps,
// slices, channels, and functions hiding inside a non-nil interface.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// ── Snapshot ─────────────────────────────────────────────────────────────────

// Snapshot is an immutable point-in-time view of a Store's key set and
// registration values. Mutating the store after the snapshot is taken does
// not affect it.
type Snapshot struct {
	keys []reflect.Type
	regs map[reflect.Type]registration
}

// Snapshot copies the current registrations. The key order is first-insertion
// order, so repeated snapshots of an unchanged store enumerate identically.
func (s *Store) Snapshot() Snapshot {
	keys := make([]reflect.Type, len(s.order))
	copy(keys, s.order)
	regs := make(map[reflect.Type]registration, len(s.regs))
	for k, v := range s.regs {
		regs[k] = v
	}
	return Snapshot{keys: keys, regs: regs}
}

// Keys returns the snapshot's identifiers in insertion order.
// The returned slice is a copy.
func (sn Snapshot) Keys() []reflect.Type {
	keys := make([]reflect.Type, len(sn.keys))
	copy(keys, sn.keys)
	return keys
}

// Len returns the number of identifiers in the snapshot.
func (sn Snapshot) Len() int { return len(sn.keys) }

// Has reports whether the snapshot contains an identifier.
func (sn Snapshot) Has(key reflect.Type) bool {
	_, ok := sn.regs[key]
	return ok
}

// Kind returns the registration kind recorded for an identifier, or
// KindNone when the snapshot does not contain it.
func (sn Snapshot) Kind(key reflect.Type) Kind {
	reg, ok := sn.regs[key]
	if !ok {
		return KindNone
	}
	return kindOf(reg)
}
