package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_NilIsNoop(t *testing.T) {
	var r *Registry
	r.ObserveSimulation("simulate", nil, time.Millisecond)
	r.CacheLookup(true)
	r.CacheError("set")
	r.ObserveHTTP("/health", http.MethodGet, 200, time.Millisecond)
	r.RateLimitRejected()
}

func TestRegistry_Counts(t *testing.T) {
	r := NewRegistry()

	r.ObserveSimulation("simulate", nil, time.Millisecond)
	r.ObserveSimulation("simulate", errors.New("boom"), time.Millisecond)
	r.CacheLookup(false)
	r.RateLimitRejected()
	r.RateLimitRejected()

	if got := testutil.ToFloat64(r.Simulations.WithLabelValues("simulate", "ok")); got != 1 {
		t.Errorf("expected 1 ok simulation, got %v", got)
	}
	if got := testutil.ToFloat64(r.Simulations.WithLabelValues("simulate", "error")); got != 1 {
		t.Errorf("expected 1 failed simulation, got %v", got)
	}
	if got := testutil.ToFloat64(r.CacheLookups.WithLabelValues("miss")); got != 1 {
		t.Errorf("expected 1 cache miss, got %v", got)
	}
	if got := testutil.ToFloat64(r.RateLimited); got != 2 {
		t.Errorf("expected 2 rejections, got %v", got)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.ObserveHTTP("/simulations", http.MethodPost, 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `sip_http_requests_total{code="200",method="POST",route="/simulations"} 1`) {
		t.Errorf("expected http counter in output, got:\n%s", body)
	}
}
