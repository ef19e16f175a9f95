package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Policy is the budget for one namespace: PerMinute requests refilled
// evenly, with up to Burst spent at once
type Policy struct {
	PerMinute int
	Burst     int
}

func (p Policy) limit() rate.Limit {
	return rate.Limit(float64(p.PerMinute) / 60.0)
}

type bucket struct {
	namespace string
	limiter   *rate.Limiter
	lastSeen  time.Time
}

// RateLimiter keeps one token bucket per namespace:key pair.
//
// Example usage:
//
//	rl := ratelimiter.NewRateLimiter()
//	rl.SetPolicy("editor.render", 60, 10)
//
//	if ok, retryAfter := rl.Allow("editor.render", userID); !ok {
//	    w.Header().Set("Retry-After", ...)
//	}
type RateLimiter struct {
	mu       sync.Mutex
	policies map[string]Policy
	buckets  map[string]*bucket
	now      func() time.Time
}

// NewRateLimiter creates an empty limiter. Namespaces without a policy are
// denied, so call SetPolicy for every namespace in use.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		policies: make(map[string]Policy),
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

// SetPolicy configures a namespace. A burst below 1 is raised to 1.
// Existing buckets of the namespace switch to the new rate immediately.
func (rl *RateLimiter) SetPolicy(namespace string, perMinute, burst int) {
	if burst < 1 {
		burst = 1
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy := Policy{PerMinute: perMinute, Burst: burst}
	rl.policies[namespace] = policy

	now := rl.now()
	for _, b := range rl.buckets {
		if b.namespace == namespace {
			b.limiter.SetLimitAt(now, policy.limit())
			b.limiter.SetBurstAt(now, policy.Burst)
		}
	}
}

// HasPolicy reports whether the namespace was configured
func (rl *RateLimiter) HasPolicy(namespace string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	_, ok := rl.policies[namespace]
	return ok
}

// Allow takes one token for key in namespace. When the bucket is empty it
// returns false and how long until a token is available.
func (rl *RateLimiter) Allow(namespace, key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, exists := rl.policies[namespace]
	if !exists || policy.PerMinute <= 0 {
		return false, 0
	}

	now := rl.now()
	compositeKey := namespace + ":" + key
	b, ok := rl.buckets[compositeKey]
	if !ok {
		b = &bucket{namespace: namespace, limiter: rate.NewLimiter(policy.limit(), policy.Burst)}
		rl.buckets[compositeKey] = b
	}
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Reset forgets the bucket for key in namespace
func (rl *RateLimiter) Reset(namespace, key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, namespace+":"+key)
}

// Sweep drops buckets that have not been used for idle and returns how many
// were removed. A dropped bucket starts full again on its next request.
func (rl *RateLimiter) Sweep(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	removed := 0
	for key, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live buckets
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}
