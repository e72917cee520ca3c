package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avenalabs/keel/health"
)

func TestScheduler_NoResultsIsHealthy(t *testing.T) {
	s := health.NewScheduler(time.Second)

	assert.True(t, s.Healthy())
	assert.Empty(t, s.Results())
}

func TestRunChecks_RecordsStatuses(t *testing.T) {
	s := health.NewScheduler(time.Second)
	s.Register("ok", func(ctx context.Context) error { return nil })
	s.Register("down", func(ctx context.Context) error { return errors.New("connection refused") })

	s.RunChecks(context.Background())

	results := s.Results()
	require.Len(t, results, 2)
	assert.True(t, results["ok"].Healthy)
	assert.Empty(t, results["ok"].Error)
	assert.False(t, results["down"].Healthy)
	assert.Equal(t, "connection refused", results["down"].Error)
	assert.False(t, s.Healthy())
}

func TestRunChecks_LatestRunWins(t *testing.T) {
	s := health.NewScheduler(time.Second)
	flaky := errors.New("timeout")
	s.Register("flaky", func(ctx context.Context) error { return flaky })

	s.RunChecks(context.Background())
	require.False(t, s.Healthy())

	flaky = nil
	s.RunChecks(context.Background())

	assert.True(t, s.Healthy())
}

func TestRegister_SameNameReplaces(t *testing.T) {
	s := health.NewScheduler(time.Second)
	s.Register("db", func(ctx context.Context) error { return errors.New("old") })
	s.Register("db", func(ctx context.Context) error { return nil })

	s.RunChecks(context.Background())

	require.Len(t, s.Results(), 1)
	assert.True(t, s.Healthy())
}

func TestRunChecks_PassesDeadline(t *testing.T) {
	s := health.NewScheduler(50 * time.Millisecond)
	s.Register("deadline", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		if !ok {
			return errors.New("no deadline set")
		}
		return nil
	})

	s.RunChecks(context.Background())

	assert.True(t, s.Healthy())
}

func TestStart_StopsOnCancel(t *testing.T) {
	s := health.NewScheduler(10 * time.Millisecond)
	s.Register("ok", func(ctx context.Context) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	// The initial sweep runs before the first tick.
	require.Eventually(t, func() bool { return len(s.Results()) == 1 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}

// ── HTTP endpoint ────────────────────────────────────────────────────────────

func healthzResponse(t *testing.T, s *health.Scheduler) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandler_Healthy(t *testing.T) {
	s := health.NewScheduler(time.Second)
	s.Register("ok", func(ctx context.Context) error { return nil })
	s.RunChecks(context.Background())

	rec, body := healthzResponse(t, s)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, true, body["healthy"])
}

func TestHandler_Unhealthy(t *testing.T) {
	s := health.NewScheduler(time.Second)
	s.Register("db", func(ctx context.Context) error { return errors.New("connection refused") })
	s.RunChecks(context.Background())

	rec, body := healthzResponse(t, s)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, body["healthy"])

	checks, ok := body["checks"].(map[string]any)
	require.True(t, ok)
	db, ok := checks["db"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "connection refused", db["error"])
}
