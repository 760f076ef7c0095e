package ratelimit

import (
	"time"
)

// Subject is the engine's view of a user record: the identifier used in
// bucket keys, the subscription tier, and the optional override. A Subject
// carries an Override only when all three override columns were present in
// the store; partial overrides are translated to nil at the persistence
// boundary and are therefore indistinguishable from no override here.
type Subject struct {
	ID       string
	Tier     Tier
	Override *Override
}

// Override is a complete per-user budget that supersedes the tier while
// ExpiresAt is in the future.
type Override struct {
	Limit         int
	WindowSeconds int
	ExpiresAt     time.Time
}

// ActiveAt reports whether the override supersedes the tier at now.
// Expiry is strict: an override expiring exactly at now is inactive.
func (o *Override) ActiveAt(now time.Time) bool {
	return o != nil && o.ExpiresAt.After(now)
}

// Resolution is the effective budget for one subject at one instant.
type Resolution struct {
	Limit          int
	WindowSeconds  int
	OverrideActive bool
}

// Resolve produces the effective (limit, window) for the subject at now.
//
// An active override wins over the tier. Otherwise the tier is looked up in
// the policy registry; an unknown tier fails with a ConfigError. The
// post-condition check guards against a policy table that slipped past
// validation: a non-positive window would make bucket arithmetic divide by
// zero downstream.
func Resolve(sub Subject, now time.Time, policies TierPolicies) (Resolution, error) {
	var res Resolution
	if sub.Override.ActiveAt(now) {
		res = Resolution{
			Limit:          sub.Override.Limit,
			WindowSeconds:  sub.Override.WindowSeconds,
			OverrideActive: true,
		}
	} else {
		quota, err := policies.Lookup(sub.Tier)
		if err != nil {
			return Resolution{}, err
		}
		res = Resolution{
			Limit:         quota.Limit,
			WindowSeconds: quota.WindowSeconds,
		}
	}

	if res.WindowSeconds <= 0 {
		return Resolution{}, NewConfigError("Invalid windowSeconds")
	}
	return res, nil
}
