package app

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations and their post-registration
// setup.
//
// Register writes into the application's store; do not resolve other
// services there. Boot runs after ALL providers have registered, so it is
// safe to resolve anything from app.Resolver inside Boot.
//
//	type RepoProvider struct{ app.BaseProvider }
//
//	func (p *RepoProvider) Register(a *app.Application) error {
//	    return inject.AddFactory[UserRepo](a.Store, func() (UserRepo, error) {
//	        cfg, err := inject.Singleton[*config.Config](a.Resolver)
//	        if err != nil {
//	            return nil, err
//	        }
//	        return newSQLUserRepo(cfg.DB)
//	    })
//	}
type ServiceProvider interface {
	// Register binds services into the application's store.
	Register(a *Application) error

	// Boot is called after all providers are registered.
	Boot(a *Application) error
}

// BaseProvider is an embeddable struct providing a no-op Boot().
// Embed it and override only what you need.
type BaseProvider struct{}

func (BaseProvider) Boot(_ *Application) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders.
// Registration order is boot order.
type ProviderRegistry struct {
	app        *Application
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to a.
func NewProviderRegistry(a *Application) *ProviderRegistry {
	return &ProviderRegistry{
		app:        a,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method. Registering the
// same provider value twice is a no-op. If the registry has already booted,
// the provider's Boot() runs immediately after Register().
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if err := provider.Register(r.app); err != nil {
		return err
	}
	r.providers = append(r.providers, provider)

	if r.booted {
		return provider.Boot(r.app)
	}
	return nil
}

// Boot calls Boot() on every registered provider, in registration order.
// Subsequent calls are no-ops. Must be called after ALL providers have been
// registered.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.providers {
		if err := provider.Boot(r.app); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
