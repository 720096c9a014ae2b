package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"sip-planner/metrics"
)

const (
	clientIdleThreshold = 1 * time.Hour
	cleanupInterval     = 30 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket. Idle clients are forgotten.
type RateLimiter struct {
	mu          sync.Mutex
	rps         rate.Limit
	burst       int
	clients     map[string]*clientLimiter
	metrics     *metrics.Registry
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiter(rps float64, burst int, m *metrics.Registry) *RateLimiter {
	rl := &RateLimiter{
		rps:         rate.Limit(rps),
		burst:       burst,
		clients:     make(map[string]*clientLimiter),
		metrics:     m,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup(time.Now())
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *RateLimiter) cleanup(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, client := range r.clients {
		if now.Sub(client.lastSeen) > clientIdleThreshold {
			delete(r.clients, ip)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

// Allow reports whether the client may make a request now.
func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	client, exists := r.clients[ip]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(r.rps, r.burst)}
		r.clients[ip] = client
	}
	client.lastSeen = time.Now()
	r.mu.Unlock()

	if client.limiter.Allow() {
		return true
	}
	r.metrics.RateLimitRejected()
	return false
}

func (r *RateLimiter) clientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
