package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerHook_NormalOperation(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	assert.Equal(t, gobreaker.StateClosed, hook.State())

	for i := 0; i < 10; i++ {
		processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
			return nil
		})
		err := processHook(ctx, goredis.NewStringCmd(ctx, "hget", usersKey, "1"))
		assert.NoError(t, err)
	}

	assert.Equal(t, gobreaker.StateClosed, hook.State())
	counts := hook.Counts()
	assert.Equal(t, uint32(10), counts.Requests)
	assert.Equal(t, uint32(10), counts.TotalSuccesses)
	assert.Equal(t, uint32(0), counts.TotalFailures)
}

func TestCircuitBreakerHook_MissIsNotAFailure(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	// A missing record returns redis.Nil, which must not count against the
	// breaker or there would be no way to 404 during a partial outage.
	for i := 0; i < 10; i++ {
		processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
			return goredis.Nil
		})
		err := processHook(ctx, goredis.NewStringCmd(ctx, "hget", usersKey, "999"))
		assert.ErrorIs(t, err, goredis.Nil)
	}

	assert.Equal(t, gobreaker.StateClosed, hook.State())
	assert.Equal(t, uint32(0), hook.Counts().TotalFailures)
}

func TestCircuitBreakerHook_TransientFailuresStayClosed(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
			return errors.New("connection refused")
		})
		err := processHook(ctx, goredis.NewStringCmd(ctx, "hget", usersKey, "1"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	assert.Equal(t, gobreaker.StateClosed, hook.State())
}

func TestCircuitBreakerHook_OpensAfterSustainedFailures(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
			return errors.New("connection timeout")
		})
		err := processHook(ctx, goredis.NewStringCmd(ctx, "hget", usersKey, "1"))
		assert.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, hook.State())
}

func TestCircuitBreakerHook_FailsFastWhenOpen(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	tripBreaker(t, hook)

	called := false
	processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		called = true
		return nil
	})

	err := processHook(ctx, goredis.NewStringCmd(ctx, "hset", usersKey, "1", "{}"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.False(t, called, "redis must not be called while the breaker is open")
}

func TestCircuitBreakerHook_ServesCachedRecordWhenOpen(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	// Populate the fallback cache with a successful read.
	processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		if c, ok := cmd.(*goredis.StringCmd); ok {
			c.SetVal(`{"id":1,"username":"alice"}`)
		}
		return nil
	})
	cmd := goredis.NewStringCmd(ctx, "hget", usersKey, "1")
	require.NoError(t, processHook(ctx, cmd))

	tripBreaker(t, hook)

	processHook = hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		t.Fatal("redis must not be called while the breaker is open")
		return nil
	})

	cmd = goredis.NewStringCmd(ctx, "hget", usersKey, "1")
	err := processHook(ctx, cmd)
	assert.NoError(t, err)

	result, _ := cmd.Result()
	assert.Equal(t, `{"id":1,"username":"alice"}`, result)
}

func TestCircuitBreakerHook_ExpiredCacheEntryFails(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	key := readKey([]any{"hget", usersKey, "1"})
	hook.cache.mu.Lock()
	hook.cache.values[key] = cachedValue{
		data: `{"id":1}`,
		at:   time.Now().Add(-10 * time.Minute),
	}
	hook.cache.mu.Unlock()

	tripBreaker(t, hook)

	processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return nil
	})

	err := processHook(ctx, goredis.NewStringCmd(ctx, "hget", usersKey, "1"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
}

func TestCircuitBreakerHook_ListingsFailWhenOpen(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	tripBreaker(t, hook)

	// HGETALL, INCR and DEL have no safe fallback.
	for _, args := range [][]any{
		{"hgetall", usersKey},
		{"incr", counterKey(usersKey)},
		{"del", usersKey},
	} {
		processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
			t.Fatal("redis must not be called while the breaker is open")
			return nil
		})

		err := processHook(ctx, goredis.NewCmd(ctx, args...))
		assert.Error(t, err, "command %v must fail while open", args[0])
		assert.Contains(t, err.Error(), "circuit breaker open")
	}
}

func TestCircuitBreakerHook_PipelineFailsWhenOpen(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	tripBreaker(t, hook)

	pipelineHook := hook.ProcessPipelineHook(func(ctx context.Context, cmds []goredis.Cmder) error {
		t.Fatal("redis pipeline must not be called while the breaker is open")
		return nil
	})

	err := pipelineHook(ctx, []goredis.Cmder{
		goredis.NewStringCmd(ctx, "hget", usersKey, "1"),
		goredis.NewStringCmd(ctx, "hget", usersKey, "2"),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
}

func TestCircuitBreakerHook_ClosesAfterRecovery(t *testing.T) {
	hook := &CircuitBreakerHook{
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "redis-test",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     50 * time.Millisecond,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.Requests >= 3 &&
					float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
			},
		}),
		cache: &readCache{values: make(map[string]cachedValue)},
	}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
			return errors.New("redis down")
		})
		_ = processHook(ctx, goredis.NewStringCmd(ctx, "hget", usersKey, "1"))
	}
	require.Equal(t, gobreaker.StateOpen, hook.State())

	time.Sleep(80 * time.Millisecond)

	processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return nil
	})
	err := processHook(ctx, goredis.NewStringCmd(ctx, "hget", usersKey, "1"))
	assert.NoError(t, err)

	assert.Equal(t, gobreaker.StateClosed, hook.State())
}

func TestStateToFloat(t *testing.T) {
	tests := []struct {
		state    gobreaker.State
		expected float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, stateToFloat(tt.state))
		})
	}
}

// tripBreaker drives the breaker into the open state with sustained failures.
func tripBreaker(t *testing.T, hook *CircuitBreakerHook) {
	t.Helper()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
			return errors.New("redis down")
		})
		_ = processHook(ctx, goredis.NewStringCmd(ctx, "hget", usersKey, "boom"))
	}
	require.Equal(t, gobreaker.StateOpen, hook.State())
}
