// Command keeldemo wires a small service graph through the kernel: a clock
// bound by concrete type, a greeter bound by factory, and a health check on
// the database connection-string assembly.
package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/avenalabs/keel/app"
	"github.com/avenalabs/keel/inject"
	"github.com/avenalabs/keel/logger"
)

// Clock tells the time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Greeter builds greeting lines.
type Greeter struct {
	AppName string
}

func (g *Greeter) Hello(name string) string {
	return fmt.Sprintf("%s says hello, %s", g.AppName, name)
}

// DemoProvider registers the demo services.
type DemoProvider struct{ app.BaseProvider }

func (p *DemoProvider) Register(a *app.Application) error {
	if err := inject.AddTypeOf[Clock, SystemClock](a.Store); err != nil {
		return err
	}
	return inject.AddFactory(a.Store, func() (*Greeter, error) {
		return &Greeter{AppName: a.Config.App.Name}, nil
	})
}

func (p *DemoProvider) Boot(a *app.Application) error {
	a.Health.Register("db-dsn", func(ctx context.Context) error {
		_, err := a.Config.DB.DSN()
		return err
	})

	clock := inject.MustSingleton[Clock](a.Resolver)
	greeter := inject.MustNew[*Greeter](a.Resolver)
	logger.Info(greeter.Hello("world"), zap.Time("at", clock.Now()))
	return nil
}

func main() {
	application, err := app.New()
	if err != nil {
		logger.Fatal("bootstrap failed", zap.Error(err))
	}
	if err := application.Register(&DemoProvider{}); err != nil {
		logger.Fatal("provider registration failed", zap.Error(err))
	}
	if err := application.Run(context.Background()); err != nil {
		logger.Fatal("application exited", zap.Error(err))
	}
}
