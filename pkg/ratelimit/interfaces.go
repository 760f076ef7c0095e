// Package ratelimit implements the tier-based rate limit decision engine.
//
// The engine decides, per request, whether a principal is within its request
// budget for the current fixed time bucket. Budgets come from the tier policy
// registry or from a per-user override with a bounded validity period.
// Counters live in a shared counter store so that every server instance
// observes a single source of truth; the store, the wall clock, and the
// metrics sink are injected as explicit capabilities to keep the engine
// deterministic under test.
package ratelimit

import (
	"context"
	"time"
)

// CounterStore is the narrow capability set the engine needs from the shared
// counter store. All methods must be safe for concurrent use; every method
// reports transport or parse failures as a *StoreError.
type CounterStore interface {
	// IncrAndExpire atomically increments the integer at key by 1 (an absent
	// key counts as 0 before the increment) and, if the post-increment value
	// is exactly 1, sets the key's TTL to ttlSeconds. The increment and the
	// conditional TTL assignment MUST happen server-side in one step; a
	// client-side INCR followed by EXPIRE is non-compliant because a crash
	// between the two commands would pin the bucket forever.
	//
	// Returns the post-increment value.
	IncrAndExpire(ctx context.Context, key string, ttlSeconds int) (int64, error)

	// TTL returns the remaining lifetime of key in whole seconds.
	// Sentinels follow the counter-store protocol: -1 means the key exists
	// without an expiry, -2 means the key does not exist.
	TTL(ctx context.Context, key string) (int64, error)

	// Get returns the stored counter value. ok is false when the key is
	// absent. A present but non-numeric value is reported as a *StoreError
	// wrapping ErrNonNumeric.
	Get(ctx context.Context, key string) (value int64, ok bool, err error)
}

// Clock abstracts wall-clock reads so that bucket boundaries and override
// expiry can be tested deterministically.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock is a Clock implementation that uses the system time.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// Metrics records decision engine outcomes. Implementations must be safe for
// concurrent use.
type Metrics interface {
	// RecordAllowed records an allowed decision for the given tier.
	// source is "tier" or "override" depending on which budget applied.
	RecordAllowed(tier, source string)

	// RecordDenied records a rate-limited decision for the given tier.
	RecordDenied(tier, source string)

	// RecordCheckDuration records the end-to-end duration of one decision.
	RecordCheckDuration(d time.Duration)

	// RecordStoreError records a counter-store failure for the given operation.
	RecordStoreError(op string)
}
