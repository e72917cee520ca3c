package app_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avenalabs/keel/app"
	"github.com/avenalabs/keel/inject"
)

// ── stub providers ────────────────────────────────────────────────────────────

type recordingProvider struct {
	app.BaseProvider
	name     string
	events   *[]string
	bootErr  error
	register func(a *app.Application) error
}

func (p *recordingProvider) Register(a *app.Application) error {
	*p.events = append(*p.events, p.name+":register")
	if p.register != nil {
		return p.register(a)
	}
	return nil
}

func (p *recordingProvider) Boot(a *app.Application) error {
	*p.events = append(*p.events, p.name+":boot")
	return p.bootErr
}

func newApp(t *testing.T) *app.Application {
	t.Helper()
	a, err := app.New()
	require.NoError(t, err)
	return a
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_RegisterCalledImmediately(t *testing.T) {
	a := newApp(t)
	var events []string

	require.NoError(t, a.Register(&recordingProvider{name: "p", events: &events}))

	assert.Equal(t, []string{"p:register"}, events)
}

func TestRegistry_BootRunsInRegistrationOrder(t *testing.T) {
	a := newApp(t)
	var events []string
	require.NoError(t, a.Register(&recordingProvider{name: "first", events: &events}))
	require.NoError(t, a.Register(&recordingProvider{name: "second", events: &events}))

	require.NoError(t, a.Boot())

	assert.Equal(t, []string{
		"first:register",
		"second:register",
		"first:boot",
		"second:boot",
	}, events)
}

func TestRegistry_BootIsIdempotent(t *testing.T) {
	a := newApp(t)
	var events []string
	require.NoError(t, a.Register(&recordingProvider{name: "p", events: &events}))

	require.NoError(t, a.Boot())
	require.NoError(t, a.Boot())

	assert.Equal(t, []string{"p:register", "p:boot"}, events)
}

func TestRegistry_SameProviderRegisteredOnce(t *testing.T) {
	a := newApp(t)
	var events []string
	p := &recordingProvider{name: "p", events: &events}

	require.NoError(t, a.Register(p))
	require.NoError(t, a.Register(p))

	assert.Equal(t, []string{"p:register"}, events)
}

func TestRegistry_LateProviderBootsImmediately(t *testing.T) {
	a := newApp(t)
	var events []string
	require.NoError(t, a.Boot())

	require.NoError(t, a.Register(&recordingProvider{name: "late", events: &events}))

	assert.Equal(t, []string{"late:register", "late:boot"}, events)
}

func TestRegistry_RegisterErrorStopsProvider(t *testing.T) {
	a := newApp(t)
	var events []string
	boom := errors.New("bad wiring")
	p := &recordingProvider{
		name:     "broken",
		events:   &events,
		register: func(a *app.Application) error { return boom },
	}

	require.ErrorIs(t, a.Register(p), boom)
	require.NoError(t, a.Boot())

	assert.Equal(t, []string{"broken:register"}, events, "a failed provider must not boot")
}

func TestRegistry_BootErrorPropagates(t *testing.T) {
	a := newApp(t)
	var events []string
	boom := errors.New("boot failed")
	require.NoError(t, a.Register(&recordingProvider{name: "p", events: &events, bootErr: boom}))

	assert.ErrorIs(t, a.Boot(), boom)
}

func TestRegistry_ProviderRegistrationsResolve(t *testing.T) {
	a := newApp(t)

	require.NoError(t, a.Register(&recordingProvider{
		name:   "mail",
		events: new([]string),
		register: func(a *app.Application) error {
			return inject.AddFactory(a.Store, func() (*app.Application, error) {
				return a, nil
			})
		},
	}))

	got, err := inject.Singleton[*app.Application](a.Resolver)
	require.NoError(t, err)
	assert.Same(t, a, got)
}
