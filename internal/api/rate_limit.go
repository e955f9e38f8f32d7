package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const minLimiterIdle = time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key. Buckets idle long enough to
// have refilled are dropped, so the map only holds recently active keys.
type RateLimiter struct {
	mu        sync.Mutex
	limits    map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter allows perSecond events per key with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	// A bucket left alone for burst/rate seconds is full again; forgetting
	// it then changes nothing for the next request.
	idle := minLimiterIdle
	if perSecond > 0 {
		if refill := time.Duration(float64(burst) / perSecond * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &RateLimiter{
		limits: make(map[string]*limiterEntry),
		rate:   rate.Limit(perSecond),
		burst:  burst,
		idle:   idle,
		now:    time.Now,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idle {
		rl.sweepLocked(now)
	}

	if e, ok := rl.limits[key]; ok {
		e.lastSeen = now
		return e.limiter
	}
	e := &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst), lastSeen: now}
	rl.limits[key] = e
	return e.limiter
}

func (rl *RateLimiter) sweepLocked(now time.Time) {
	for key, e := range rl.limits {
		if now.Sub(e.lastSeen) >= rl.idle {
			delete(rl.limits, key)
		}
	}
	rl.lastSweep = now
}

// Allow reports whether an event for key may happen now.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Len returns the number of keys currently tracked.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limits)
}
