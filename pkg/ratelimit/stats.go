package ratelimit

import (
	"context"
	"errors"
)

// Stats is a read-only projection of a subject's current bucket.
type Stats struct {
	UserID        string
	Tier          Tier
	Limit         int
	WindowSeconds int

	// CurrentCount is the number of requests observed in the live bucket.
	// An absent or unparseable counter reads as 0.
	CurrentCount int64

	// SecondsUntilReset forwards the raw counter-store TTL, including the
	// protocol sentinels: -1 for a key without expiry, -2 for a missing
	// key. Clients interpret the sentinels; the projector does not rewrite
	// them.
	SecondsUntilReset int64

	OverrideActive bool
}

// Stats projects the subject's current bucket without mutating it. It uses
// the same resolver and key derivation as Check, so it always observes the
// bucket a concurrent Check would increment.
func (e *Engine) Stats(ctx context.Context, sub Subject) (Stats, error) {
	now := e.clock.Now()

	res, err := Resolve(sub, now, e.policies)
	if err != nil {
		return Stats{}, err
	}

	key := BucketKey(sub.ID, now.UnixMilli()/1000, res.WindowSeconds)

	count, ok, err := e.store.Get(ctx, key)
	switch {
	case err != nil && errors.Is(err, ErrNonNumeric):
		count = 0
	case err != nil:
		e.metrics.RecordStoreError("get")
		return Stats{}, err
	case !ok:
		count = 0
	}

	ttl, err := e.store.TTL(ctx, key)
	if err != nil {
		e.metrics.RecordStoreError("ttl")
		return Stats{}, err
	}

	return Stats{
		UserID:            sub.ID,
		Tier:              sub.Tier,
		Limit:             res.Limit,
		WindowSeconds:     res.WindowSeconds,
		CurrentCount:      count,
		SecondsUntilReset: ttl,
		OverrideActive:    res.OverrideActive,
	}, nil
}
