// Package ratelimit throttles API clients with one token bucket per client.
package ratelimit

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter provides per-client rate limiting using the token bucket algorithm
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     float64
	burst   int
	now     func() time.Time
}

type client struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a limiter granting each client rps requests per second
// with the given burst
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{
		clients: make(map[string]*client),
		rps:     rps,
		burst:   burst,
		now:     time.Now,
	}
}

// get returns or creates the bucket for key
func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		c = &client{lim: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = l.now()
	return c.lim
}

// Allow reports whether a request from key may proceed now
func (l *Limiter) Allow(key string) bool {
	return l.get(key).Allow()
}

// RetryAfter estimates how long key must wait for its next token
func (l *Limiter) RetryAfter(key string) time.Duration {
	r := l.get(key).Reserve()
	d := r.Delay()
	r.Cancel()
	return d
}

// Sweep forgets clients idle for longer than idle and returns how many
// were removed
func (l *Limiter) Sweep(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	n := 0
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			n++
		}
	}
	return n
}

// Run sweeps idle clients every interval until ctx is done
func (l *Limiter) Run(ctx context.Context, interval, idle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep(idle)
		}
	}
}

// Stats returns a snapshot per client, sorted by key
func (l *Limiter) Stats() []ClientStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := make([]ClientStats, 0, len(l.clients))
	for key, c := range l.clients {
		stats = append(stats, ClientStats{
			Client:          key,
			RPS:             float64(c.lim.Limit()),
			Burst:           c.lim.Burst(),
			TokensAvailable: c.lim.Tokens(),
			LastSeen:        c.lastSeen,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Client < stats[j].Client })
	return stats
}

// ClientStats represents statistics for a single client bucket
type ClientStats struct {
	Client          string    `json:"client"`
	RPS             float64   `json:"rps"`
	Burst           int       `json:"burst"`
	TokensAvailable float64   `json:"tokens_available"`
	LastSeen        time.Time `json:"last_seen"`
}
