package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"sip-planner/metrics"
)

func TestRateLimiter_Burst(t *testing.T) {
	m := metrics.NewRegistry()
	limiter := NewRateLimiter(0.001, 2, m)
	defer limiter.Stop()

	if !limiter.Allow("10.0.0.1") || !limiter.Allow("10.0.0.1") {
		t.Fatalf("expected the burst to be allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Errorf("expected the third request to be rejected")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Errorf("expected another client to have its own bucket")
	}
	if got := testutil.ToFloat64(m.RateLimited); got != 1 {
		t.Errorf("expected 1 rejection recorded, got %v", got)
	}
}

func TestRateLimiter_CleanupForgetsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 1, nil)
	defer limiter.Stop()

	limiter.Allow("10.0.0.1")
	limiter.cleanup(time.Now())
	if limiter.clientCount() != 1 {
		t.Fatalf("expected active client to be kept")
	}

	limiter.cleanup(time.Now().Add(2 * clientIdleThreshold))
	if limiter.clientCount() != 0 {
		t.Errorf("expected idle client to be removed")
	}
}

func TestRateLimiter_StopTwice(t *testing.T) {
	limiter := NewRateLimiter(1, 1, nil)
	limiter.Stop()
	limiter.Stop()
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, nil)
	defer limiter.Stop()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RateLimitMiddleware(limiter, next)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected first request through, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}
