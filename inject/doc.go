// Package inject is a minimal service registry and resolver.
//
// A Store records how to produce instances of abstract service types; a
// Resolver turns those recordings into concrete values on demand. Services
// are keyed by type token, and a registration is one of three kinds:
//
//   - a pre-built instance      (AddInstance / AddInstanceOf)
//   - a zero-argument factory   (AddFactory / AddFactoryOf)
//   - a concrete type to build  (AddType / AddTypeOf)
//
// # Registering
//
//	store := inject.NewStore()
//
//	// Identifier as its own concrete type
//	inject.AddType[SystemClock](store)
//
//	// Interface backed by a concrete implementation
//	inject.AddTypeOf[Clock, SystemClock](store)
//
//	// Ready-made value
//	inject.AddInstance[*config.Config](store, cfg)
//
//	// Producer function, invoked per resolution
//	inject.AddFactory[Logger](store, func() (Logger, error) {
//	    return newFileLogger("/var/log/app.log")
//	})
//
// Registering the same identifier twice silently replaces the earlier
// registration — last write wins.
//
// # Resolving
//
//	resolver := inject.NewResolver(store)
//
//	clock, err := inject.New[Clock](resolver)       // fresh instance each call
//	log, err  := inject.Singleton[Logger](resolver) // built once, then cached
//
// New never touches the singleton cache; Singleton delegates to New on a
// cache miss and remembers the result for the resolver's lifetime. MustNew
// and MustSingleton panic instead of returning an error, for call sites
// where a broken registration is a programming bug.
//
// # Validating
//
//	if res := resolver.Validate(); !res.IsOK() {
//	    log.Fatal(res.Err())
//	}
//
// Validate resolves every registered identifier, collecting per-identifier
// failures into one aggregate report instead of stopping at the first error.
// Factories are really invoked and constructors really run during the sweep.
//
// # Concurrency
//
// Neither Store nor Resolver locks internally. The intended shape is
// write-once at startup, read-only afterwards; callers that mutate a store
// or resolve concurrently with writes must synchronize externally.
package inject
