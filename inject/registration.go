package inject

import "reflect"

// registration is the closed set of recording kinds a Store can hold.
// The marker method seals the set so the resolver's type switch is
// exhaustive over exactly these three variants.
type registration interface {
	isRegistration()
}

// instanceRegistration holds a pre-built value. Resolution returns the value
// as-is; it is shared between the store and every caller, never copied.
type instanceRegistration struct {
	value any
}

// factoryRegistration holds a zero-argument producer. The typed function
// supplied to AddFactory is adapted to this untyped shape at registration
// time; it is invoked once per New call.
type factoryRegistration struct {
	produce func() (any, error)
}

// typeRegistration holds the concrete type to instantiate. Constructibility
// is checked lazily, at resolution time.
type typeRegistration struct {
	impl reflect.Type
}

func (instanceRegistration) isRegistration() {}
func (factoryRegistration) isRegistration()  {}
func (typeRegistration) isRegistration()     {}

// typeOf returns the type token for T, including interface types.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Kind identifies a registration's variant when inspecting a snapshot.
type Kind int

const (
	// KindNone means the identifier is not registered.
	KindNone Kind = iota

	// KindInstance is a pre-built value registration.
	KindInstance

	// KindFactory is a producer-function registration.
	KindFactory

	// KindType is a concrete-type registration.
	KindType
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInstance:
		return "instance"
	case KindFactory:
		return "factory"
	case KindType:
		return "type"
	default:
		return "none"
	}
}

func kindOf(reg registration) Kind {
	switch reg.(type) {
	case instanceRegistration:
		return KindInstance
	case factoryRegistration:
		return KindFactory
	case typeRegistration:
		return KindType
	default:
		return KindNone
	}
}
