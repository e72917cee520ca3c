// Package app is the process bootstrap layer: it loads configuration, wires
// the core services into an injection store, runs startup validation, and
// supervises the periodic health scheduler and its HTTP endpoint.
package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/avenalabs/keel/config"
	"github.com/avenalabs/keel/health"
	"github.com/avenalabs/keel/inject"
	"github.com/avenalabs/keel/logger"
	"github.com/avenalabs/keel/outcome"
)

// Application is the top-level kernel. It owns one registration store, one
// resolver bound to it, the provider registry, and the health scheduler.
type Application struct {
	Store     *inject.Store
	Resolver  *inject.Resolver
	Config    *config.Config
	Health    *health.Scheduler
	Providers *ProviderRegistry
}

// New creates and bootstraps the application: loads .env configuration and
// registers the core services (config, logger, health scheduler) into the
// store as pre-built instances.
//
//	application, err := app.New()
//	application.Register(&AppServiceProvider{})
//	application.Run(context.Background())
func New(envFiles ...string) (*Application, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}

	store := inject.NewStore()
	a := &Application{
		Store:    store,
		Resolver: inject.NewResolver(store),
		Config:   cfg,
		Health:   health.NewScheduler(cfg.Health.Interval),
	}
	a.Providers = NewProviderRegistry(a)

	if err := inject.AddInstance(store, cfg); err != nil {
		return nil, err
	}
	if err := inject.AddInstance(store, logger.Get()); err != nil {
		return nil, err
	}
	if err := inject.AddInstance(store, a.Health); err != nil {
		return nil, err
	}
	return a, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all registered providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Validate proves every registration in the store is constructible,
// collecting all failures into one report instead of stopping at the first.
func (a *Application) Validate() outcome.Result[int] {
	return a.Resolver.Validate()
}

// Run boots the application, refuses startup when validation fails, then
// serves the health endpoint and runs the check scheduler until ctx is
// cancelled or SIGINT/SIGTERM arrives.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}

	if res := a.Validate(); !res.IsOK() {
		logger.Error("startup validation failed", zap.Error(res.Err()))
		return res.Err()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.Health.Start(ctx)

	srv := &http.Server{
		Addr:    ":" + a.Config.Health.Port,
		Handler: a.Health.Handler(),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("application running",
		zap.String("name", a.Config.App.Name),
		zap.String("env", a.Config.App.Env),
		zap.String("health_addr", srv.Addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("application stopped")
	return nil
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
