// Package ratelimit implements a per-client sliding-window request counter.
// Only events within the trailing window count against the quota, so capacity
// frees up one request at a time as the window slides past old requests.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultQuota  = 100
	DefaultWindow = time.Hour
)

// Limiter tracks request timestamps per client. Safe for concurrent use.
// The number of distinct clients is unbounded; single-process only.
type Limiter struct {
	mu      sync.Mutex
	quota   int
	window  time.Duration
	clients map[string][]time.Time
	now     func() time.Time
}

// New creates a limiter admitting at most quota requests per client within
// the trailing window.
func New(quota int, window time.Duration) *Limiter {
	if quota <= 0 {
		quota = DefaultQuota
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		quota:   quota,
		window:  window,
		clients: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow prunes timestamps older than the window for clientID, then admits and
// records the request if the remaining count is below the quota. Rejected
// requests are not recorded.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.clients[clientID][:0]
	for _, ts := range l.clients[clientID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.quota {
		l.clients[clientID] = recent
		return false
	}

	l.clients[clientID] = append(recent, now)
	return true
}

// ActiveClients returns the number of clients with a tracked window.
func (l *Limiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Quota returns the configured request quota.
func (l *Limiter) Quota() int {
	return l.quota
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}
