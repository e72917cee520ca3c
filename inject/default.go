package inject

import "sync"

// The process-wide default store/resolver pair. Built lazily on first
// access and alive for the remainder of the process; there is no teardown.
// Populate it once at startup, then read for the process's lifetime.
var (
	defaultOnce     sync.Once
	defaultStore    *Store
	defaultResolver *Resolver
)

func initDefault() {
	defaultOnce.Do(func() {
		defaultStore = NewStore()
		defaultResolver = NewResolver(defaultStore)
	})
}

// DefaultStore returns the process-wide registration store.
func DefaultStore() *Store {
	initDefault()
	return defaultStore
}

// DefaultResolver returns the process-wide resolver, bound to DefaultStore.
func DefaultResolver() *Resolver {
	initDefault()
	return defaultResolver
}

// NewDefault resolves I freshly from the default resolver.
func NewDefault[I any]() (I, error) {
	return New[I](DefaultResolver())
}

// SingletonDefault resolves I as a singleton from the default resolver.
func SingletonDefault[I any]() (I, error) {
	return Singleton[I](DefaultResolver())
}
