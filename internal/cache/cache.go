// Package cache memoises integrated cross sections. The in-memory backend is
// always available; the Redis backend is used when REDIS_ADDR is set and sits
// behind a circuit breaker so an unhealthy server degrades to cache misses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// ErrMiss is returned by Get when no live value is stored under the key
var ErrMiss = errors.New("cache miss")

// Cache stores float64 results under string keys
type Cache interface {
	Get(ctx context.Context, key string) (float64, error)
	Set(ctx context.Context, key string, v float64, ttl time.Duration) error
}

// Key hashes parts into a fixed-length key
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "resxsec:" + hex.EncodeToString(sum[:])
}

type entry struct {
	v   float64
	exp time.Time
}

// Memory is a process-local cache; a zero ttl never expires
type Memory struct {
	mu sync.Mutex
	m  map[string]entry
}

// NewMemory returns an empty in-memory cache
func NewMemory() *Memory { return &Memory{m: make(map[string]entry)} }

// Get implements Cache
func (c *Memory) Get(_ context.Context, key string) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok || (!e.exp.IsZero() && time.Now().After(e.exp)) {
		return 0, ErrMiss
	}
	return e.v, nil
}

// Set implements Cache
func (c *Memory) Set(_ context.Context, key string, v float64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := entry{v: v}
	if ttl > 0 {
		e.exp = time.Now().Add(ttl)
	}
	c.m[key] = e
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *Memory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// Redis stores values as 8-byte big-endian IEEE-754 floats
type Redis struct {
	client  redis.Cmdable
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
}

// BreakerSettings returns the breaker configuration used by NewRedis:
// three consecutive failures open it for 30s
func BreakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Cache circuit breaker changed state")
		},
	}
}

// NewRedis wraps client; timeout bounds every call
func NewRedis(client redis.Cmdable, timeout time.Duration) *Redis {
	return &Redis{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker(BreakerSettings("redis-cache")),
		timeout: timeout,
	}
}

// NewAuto returns a Redis cache when REDIS_ADDR is set and an in-memory one
// otherwise
func NewAuto() Cache {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		log.Info().Str("addr", addr).Msg("Using Redis result cache")
		return NewRedis(redis.NewClient(&redis.Options{Addr: addr}), 500*time.Millisecond)
	}
	return NewMemory()
}

// Get implements Cache. An open breaker reports a miss.
func (r *Redis) Get(ctx context.Context, key string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.breaker.Execute(func() (interface{}, error) {
		b, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return b, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return 0, fmt.Errorf("%w: %v", ErrMiss, err)
	}
	if err != nil {
		return 0, fmt.Errorf("redis get: %w", err)
	}
	if out == nil {
		return 0, ErrMiss
	}
	return decode(out.([]byte))
}

// Set implements Cache
func (r *Redis) Set(ctx context.Context, key string, v float64, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.client.Set(ctx, key, Encode(v), ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}


// Encode is the wire form of a cached value
func Encode(v float64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(v))
	return b
}

func decode(b []byte) (float64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("cached value has %d bytes, want 8", len(b))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}
