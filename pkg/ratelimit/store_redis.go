package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

// incrAndExpireScript is the server-side atomic increment. EXPIRE runs only
// for the write that created the key, so the TTL is set exactly once per
// bucket and is never extended by later increments. Running it as one script
// closes the window in which a client could crash between INCR and EXPIRE
// and leave a bucket without expiry.
var incrAndExpireScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`)

// RedisCounterStore implements CounterStore on a Redis-compatible server.
//
// All commands flow through a circuit breaker: once the store is known to be
// down, callers fail fast with a StoreError instead of stacking timeouts.
// An open breaker never approximates a decision locally; shared-store
// failures are reported, not masked.
type RedisCounterStore struct {
	rdb     redis.UniversalClient
	breaker *gobreaker.CircuitBreaker
}

// NewRedisCounterStore wraps the given client. breaker may be nil, in which
// case commands run unguarded (used in tests).
func NewRedisCounterStore(rdb redis.UniversalClient, breaker *gobreaker.CircuitBreaker) *RedisCounterStore {
	return &RedisCounterStore{rdb: rdb, breaker: breaker}
}

// NewCounterBreaker returns the breaker configuration used for counter-store
// commands: trip after consecutive failures, probe again after the timeout.
func NewCounterBreaker(failureThreshold uint32, resetTimeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "counter-store",
		Timeout: resetTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
	})
}

func (s *RedisCounterStore) execute(op string, fn func() (any, error)) (any, error) {
	if s.breaker == nil {
		v, err := fn()
		if err != nil {
			return nil, NewStoreError(op, err)
		}
		return v, nil
	}
	v, err := s.breaker.Execute(fn)
	if err != nil {
		return nil, NewStoreError(op, err)
	}
	return v, nil
}

// IncrAndExpire implements CounterStore using the server-side script.
func (s *RedisCounterStore) IncrAndExpire(ctx context.Context, key string, ttlSeconds int) (int64, error) {
	v, err := s.execute("incr_and_expire", func() (any, error) {
		return incrAndExpireScript.Run(ctx, s.rdb, []string{key}, ttlSeconds).Result()
	})
	if err != nil {
		return 0, err
	}
	count, ok := v.(int64)
	if !ok {
		return 0, NewStoreError("incr_and_expire", ErrNonNumeric)
	}
	return count, nil
}

// TTL implements CounterStore. go-redis reports the protocol sentinels as
// bare durations of -1 and -2 nanoseconds; everything else is a real
// duration that is converted back to whole seconds.
func (s *RedisCounterStore) TTL(ctx context.Context, key string) (int64, error) {
	v, err := s.execute("ttl", func() (any, error) {
		return s.rdb.TTL(ctx, key).Result()
	})
	if err != nil {
		return 0, err
	}
	d := v.(time.Duration)
	switch d {
	case -1, -2:
		return int64(d), nil
	default:
		return int64(d / time.Second), nil
	}
}

// Get implements CounterStore. A missing key is (0, false, nil); a present
// but non-numeric value is a StoreError wrapping ErrNonNumeric.
func (s *RedisCounterStore) Get(ctx context.Context, key string) (int64, bool, error) {
	v, err := s.execute("get", func() (any, error) {
		raw, err := s.rdb.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return raw, nil
	})
	if err != nil {
		return 0, false, err
	}
	if v == nil {
		return 0, false, nil
	}
	count, perr := strconv.ParseInt(v.(string), 10, 64)
	if perr != nil {
		return 0, true, NewStoreError("get", ErrNonNumeric)
	}
	return count, true, nil
}
