package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/t0sssik/gsd-ci-cd/internal/metrics"
)

// CircuitBreakerHook implements redis.Hook to stop hammering Redis once it is
// clearly down. While the breaker is open, record reads (HGET) are served from
// a short-lived local cache when possible; everything else fails fast, which
// also makes Store.Ping (and therefore the readiness check) fail immediately.
type CircuitBreakerHook struct {
	cb    *gobreaker.CircuitBreaker
	cache *readCache
}

var _ goredis.Hook = (*CircuitBreakerHook)(nil)

// readCache holds the last known HGET results for fallback while the
// breaker is open.
type readCache struct {
	mu     sync.RWMutex
	values map[string]cachedValue
}

type cachedValue struct {
	data string
	at   time.Time
}

const cacheTTL = 5 * time.Minute

// NewCircuitBreakerHook creates a breaker that opens at a 60% failure rate
// over at least 5 requests, waits 30s before probing again, and closes after
// one successful half-open request.
func NewCircuitBreakerHook() *CircuitBreakerHook {
	settings := gobreaker.Settings{
		Name:        "redis",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, goredis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Redis circuit breaker state changed",
				"from", from.String(),
				"to", to.String(),
			)
			metrics.RedisBreakerTransitions.WithLabelValues(to.String()).Inc()
			metrics.RedisBreakerState.Set(stateToFloat(to))
		},
	}

	return &CircuitBreakerHook{
		cb:    gobreaker.NewCircuitBreaker(settings),
		cache: &readCache{values: make(map[string]cachedValue)},
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func (h *CircuitBreakerHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *CircuitBreakerHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		_, err := h.cb.Execute(func() (any, error) {
			return nil, next(ctx, cmd)
		})

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return h.fallback(cmd)
		}

		if err == nil || errors.Is(err, goredis.Nil) {
			h.cacheRead(cmd)
		}
		return err
	}
}

func (h *CircuitBreakerHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		_, err := h.cb.Execute(func() (any, error) {
			return nil, next(ctx, cmds)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("redis circuit breaker open: %w", gobreaker.ErrOpenState)
		}
		return err
	}
}

// fallback serves cached record reads while the breaker is open. Listings,
// writes and counters have no safe fallback and fail fast.
func (h *CircuitBreakerHook) fallback(cmd goredis.Cmder) error {
	if cmd.Name() == "hget" {
		if c, ok := cmd.(*goredis.StringCmd); ok {
			if cached, ok := h.cache.get(readKey(cmd.Args())); ok {
				slog.Debug("Redis circuit breaker open, serving cached record",
					"args", cmd.Args(),
				)
				c.SetVal(cached)
				return nil
			}
		}
	}
	return fmt.Errorf("redis circuit breaker open: %w", gobreaker.ErrOpenState)
}

// cacheRead stores successful HGET results for future fallback.
func (h *CircuitBreakerHook) cacheRead(cmd goredis.Cmder) {
	if cmd.Name() != "hget" {
		return
	}
	c, ok := cmd.(*goredis.StringCmd)
	if !ok {
		return
	}
	value, err := c.Result()
	if err != nil || value == "" {
		return
	}

	h.cache.mu.Lock()
	h.cache.values[readKey(cmd.Args())] = cachedValue{data: value, at: time.Now()}
	h.cache.mu.Unlock()
}

// readKey builds the cache key for an HGET command ("<hash>/<field>").
func readKey(args []any) string {
	if len(args) < 3 {
		return ""
	}
	return fmt.Sprintf("%v/%v", args[1], args[2])
}

func (c *readCache) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, ok := c.values[key]
	if !ok || time.Since(cached.at) > cacheTTL {
		return "", false
	}
	return cached.data, true
}

// State reports the current breaker state.
func (h *CircuitBreakerHook) State() gobreaker.State {
	return h.cb.State()
}

// Counts reports the breaker's rolling request counts.
func (h *CircuitBreakerHook) Counts() gobreaker.Counts {
	return h.cb.Counts()
}
