// Package ratelimit implements the contact form's best-effort per-IP limiter.
// State is process-local and resets on restart; it is not correct across
// multiple server instances.
package ratelimit

import (
	"sync"
	"time"
)

const pruneThreshold = 1000

// Limiter allows one hit per key per window.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	hits   map[string]time.Time
	now    func() time.Time
}

func New(window time.Duration) *Limiter {
	return &Limiter{
		window: window,
		hits:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// NewWithClock injects a clock for tests.
func NewWithClock(window time.Duration, now func() time.Time) *Limiter {
	l := New(window)
	l.now = now
	return l
}

// Allow reports whether key may proceed and records the hit when it may.
// Denied attempts do not refresh the window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	last, seen := l.hits[key]
	if seen && now.Sub(last) < l.window {
		return false
	}
	l.hits[key] = now

	// Opportunistic prune once the map grows past the threshold.
	if len(l.hits) > pruneThreshold {
		cutoff := now.Add(-l.window)
		for k, t := range l.hits {
			if t.Before(cutoff) {
				delete(l.hits, k)
			}
		}
	}
	return true
}
