// Package ratelimit implements a per-client token bucket limiter with
// per-endpoint quotas.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Info describes the outcome of a rate limit check, used to populate
// X-RateLimit response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter tracks one token bucket per (client, endpoint) pair.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewLimiter(config *Config) *Limiter {
	l := &Limiter{
		buckets:     make(map[string]*bucket),
		config:      config,
		stopCleanup: make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether clientID may make a request to the given endpoint
// and method, consuming one token if so.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	ec := l.config.Match(endpoint, method)
	if ec == nil {
		// Unlimited endpoint.
		return true, Info{Allowed: true, Limit: -1, Remaining: -1}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := fmt.Sprintf("%s|%s %s", clientID, method, ec.Pattern)
	now := time.Now()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(ec.Burst), lastRefill: now}
		l.buckets[key] = b
	}

	refillRate := float64(ec.RequestsPerMinute) / 60.0
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * refillRate
	if b.tokens > float64(ec.Burst) {
		b.tokens = float64(ec.Burst)
	}
	b.lastRefill = now

	info := Info{
		Limit:     ec.RequestsPerMinute,
		ResetTime: now.Add(time.Duration((float64(ec.Burst)-b.tokens)/refillRate) * time.Second),
	}

	if b.tokens >= 1 {
		b.tokens--
		info.Allowed = true
		info.Remaining = int(b.tokens)
		return true, info
	}

	info.Remaining = 0
	info.RetryAfter = time.Duration((1-b.tokens)/refillRate*float64(time.Second)) + time.Second
	return false, info
}

// Stop shuts down the background bucket cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCleanup) })
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCleanup:
			return
		}
	}
}

// cleanup drops buckets that have been idle for over an hour.
func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-time.Hour)
	for key, b := range l.buckets {
		if b.lastRefill.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}
