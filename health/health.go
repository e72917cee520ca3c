// Package health runs named health checks on a periodic schedule and
// exposes the latest results over HTTP.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avenalabs/keel/logger"
)

// Check probes one dependency. A nil return means healthy.
type Check func(ctx context.Context) error

// Status is the recorded result of a check's most recent run.
type Status struct {
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Scheduler runs registered checks on a fixed interval and caches the last
// Status per check. Unlike the injection core, the scheduler is safe for
// concurrent use: the ticker goroutine writes results while HTTP handlers
// read them.
type Scheduler struct {
	mu       sync.RWMutex
	interval time.Duration
	timeout  time.Duration
	checks   map[string]Check
	order    []string
	results  map[string]Status
}

// NewScheduler creates a Scheduler that sweeps every interval.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Scheduler{
		interval: interval,
		timeout:  interval,
		checks:   make(map[string]Check),
		results:  make(map[string]Status),
	}
}

// Register adds a named check. Registering the same name again replaces the
// previous check.
func (s *Scheduler) Register(name string, check Check) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.checks[name]; !exists {
		s.order = append(s.order, name)
	}
	s.checks[name] = check
}

// RunChecks executes every registered check once and records the results.
func (s *Scheduler) RunChecks(ctx context.Context) {
	s.mu.RLock()
	names := make([]string, len(s.order))
	copy(names, s.order)
	checks := make(map[string]Check, len(s.checks))
	for name, c := range s.checks {
		checks[name] = c
	}
	timeout := s.timeout
	s.mu.RUnlock()

	for _, name := range names {
		cctx, cancel := context.WithTimeout(ctx, timeout)
		err := checks[name](cctx)
		cancel()

		st := Status{Healthy: err == nil, CheckedAt: time.Now()}
		if err != nil {
			st.Error = err.Error()
		}

		s.mu.Lock()
		prev, seen := s.results[name]
		s.results[name] = st
		s.mu.Unlock()

		if err != nil && (!seen || prev.Healthy) {
			logger.Warn("health check failing", zap.String("check", name), zap.Error(err))
		} else if err == nil && seen && !prev.Healthy {
			logger.Info("health check recovered", zap.String("check", name))
		}
	}
}

// Start runs one immediate sweep, then repeats every interval until ctx is
// cancelled. It blocks; run it on its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.RunChecks(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunChecks(ctx)
		}
	}
}

// Healthy reports whether every check's latest run succeeded. A scheduler
// with no recorded results is healthy.
func (s *Scheduler) Healthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.results {
		if !st.Healthy {
			return false
		}
	}
	return true
}

// Results returns a copy of the latest per-check statuses.
func (s *Scheduler) Results() map[string]Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Status, len(s.results))
	for name, st := range s.results {
		out[name] = st
	}
	return out
}

// Handler returns an HTTP handler serving GET /healthz: 200 with the
// per-check report when everything is healthy, 503 otherwise.
func (s *Scheduler) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		healthy := s.Healthy()
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"healthy": healthy,
			"checks":  s.Results(),
		})
	})
	return r
}
