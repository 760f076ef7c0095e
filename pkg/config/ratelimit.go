package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tierlimit/pkg/ratelimit"
)

// LoadTierPolicies builds the tier policy registry for the process.
//
// Precedence, lowest to highest:
//  1. Built-in defaults (free: 10/60s, premium: 100/60s)
//  2. A YAML file named by RATELIMIT_TIERS_FILE, mapping tier name to
//     {limit, windowSeconds}
//  3. Per-tier environment variables RATELIMIT_TIER_<NAME>_LIMIT and
//     RATELIMIT_TIER_<NAME>_WINDOW_SECONDS for the built-in tiers
//
// The resulting table is validated and immutable afterwards; changing it
// requires a restart.
func LoadTierPolicies() (ratelimit.TierPolicies, error) {
	policies := ratelimit.DefaultTierPolicies()

	if path := os.Getenv("RATELIMIT_TIERS_FILE"); path != "" {
		filePolicies, err := loadTierPoliciesFile(path)
		if err != nil {
			return nil, fmt.Errorf("load tier policies from %s: %w", path, err)
		}
		for tier, quota := range filePolicies {
			policies[tier] = quota
		}
		slog.Info("tier policies loaded from file",
			slog.String("path", path),
			slog.Int("tiers", len(filePolicies)))
	}

	for tier := range policies {
		envName := strings.ToUpper(string(tier))
		quota := policies[tier]
		quota.Limit = GetEnvInt("RATELIMIT_TIER_"+envName+"_LIMIT", quota.Limit)
		quota.WindowSeconds = GetEnvInt("RATELIMIT_TIER_"+envName+"_WINDOW_SECONDS", quota.WindowSeconds)
		policies[tier] = quota
	}

	if err := policies.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tier policies: %w", err)
	}
	return policies, nil
}

// loadTierPoliciesFile reads a tier policy table from a YAML document:
//
//	free:
//	  limit: 10
//	  windowSeconds: 60
//	premium:
//	  limit: 100
//	  windowSeconds: 60
func loadTierPoliciesFile(path string) (ratelimit.TierPolicies, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed map[string]ratelimit.Quota
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	policies := make(ratelimit.TierPolicies, len(parsed))
	for name, quota := range parsed {
		policies[ratelimit.Tier(name)] = quota
	}
	return policies, nil
}
