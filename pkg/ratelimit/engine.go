package ratelimit

import (
	"context"
)

// Engine orchestrates the limit resolver and the counter store into a
// rate limit decision. Its dependencies are fixed at construction; the
// engine itself holds no mutable state and is safe for concurrent use.
type Engine struct {
	store    CounterStore
	policies TierPolicies
	clock    Clock
	metrics  Metrics
}

// NewEngine creates a decision engine over the given capabilities.
// A nil metrics sink is replaced by a no-op implementation.
func NewEngine(store CounterStore, policies TierPolicies, clock Clock, metrics Metrics) *Engine {
	if metrics == nil {
		metrics = NewNoOpMetrics()
	}
	return &Engine{
		store:    store,
		policies: policies,
		clock:    clock,
		metrics:  metrics,
	}
}

// Check decides whether the subject may perform one more request in the
// current bucket.
//
// The wall clock is read exactly once and reused for both the resolver and
// the key derivation, so the override check and the bucket boundary can
// never disagree about "now". The counter is incremented before the
// comparison: a denied request still counts, which keeps the allowed floor
// consistent under load and makes retry storms pay for themselves.
//
// The comparison is strict: exactly limit requests are allowed per bucket
// and the request that produces count == limit+1 is the first denial.
func (e *Engine) Check(ctx context.Context, sub Subject) (Decision, error) {
	now := e.clock.Now()
	start := now
	defer func() {
		e.metrics.RecordCheckDuration(e.clock.Now().Sub(start))
	}()

	res, err := Resolve(sub, now, e.policies)
	if err != nil {
		return Decision{}, err
	}
	source := "tier"
	if res.OverrideActive {
		source = "override"
	}

	key := BucketKey(sub.ID, now.UnixMilli()/1000, res.WindowSeconds)

	count, err := e.store.IncrAndExpire(ctx, key, res.WindowSeconds)
	if err != nil {
		e.metrics.RecordStoreError("incr_and_expire")
		return Decision{}, err
	}

	if count <= int64(res.Limit) {
		e.metrics.RecordAllowed(sub.Tier.String(), source)
		return NewAllowedDecision(), nil
	}

	ttl, err := e.store.TTL(ctx, key)
	if err != nil {
		e.metrics.RecordStoreError("ttl")
		return Decision{}, err
	}

	// A negative TTL here means the key was lost between the increment and
	// the TTL read (or carries no expiry); fall back to a full window.
	// This is a race, not an error.
	retryAfter := ttl
	if retryAfter < 0 {
		retryAfter = int64(res.WindowSeconds)
	}

	e.metrics.RecordDenied(sub.Tier.String(), source)
	return NewDeniedDecision(retryAfter), nil
}
