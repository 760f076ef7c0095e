package ratelimit

import (
	"fmt"
)

// Tier represents a user's subscription tier.
type Tier string

const (
	// TierFree is the default tier for unpaid users.
	TierFree Tier = "free"

	// TierPremium has elevated rate limits (for paying customers).
	TierPremium Tier = "premium"
)

// String returns the string representation of the tier.
func (t Tier) String() string {
	return string(t)
}

// Quota is the request budget for one tier: at most Limit requests per
// WindowSeconds-sized bucket.
type Quota struct {
	Limit         int `yaml:"limit"`
	WindowSeconds int `yaml:"windowSeconds"`
}

// TierPolicies maps each tier to its quota. The registry is read-only for
// the lifetime of the process; replacing it requires a restart.
type TierPolicies map[Tier]Quota

// DefaultTierPolicies returns the built-in tier policy table.
func DefaultTierPolicies() TierPolicies {
	return TierPolicies{
		TierFree:    {Limit: 10, WindowSeconds: 60},
		TierPremium: {Limit: 100, WindowSeconds: 60},
	}
}

// Lookup returns the quota for the given tier. A missing tier is a
// ConfigError; tier literals are matched exactly, without normalization.
func (p TierPolicies) Lookup(tier Tier) (Quota, error) {
	q, ok := p[tier]
	if !ok {
		return Quota{}, NewConfigError("Config missing for tier %s", tier)
	}
	return q, nil
}

// Validate checks that every configured quota is positive.
func (p TierPolicies) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("tier policies must not be empty")
	}
	for tier, q := range p {
		if q.Limit <= 0 {
			return fmt.Errorf("tier %s: limit must be positive, got %d", tier, q.Limit)
		}
		if q.WindowSeconds <= 0 {
			return fmt.Errorf("tier %s: windowSeconds must be positive, got %d", tier, q.WindowSeconds)
		}
	}
	return nil
}
