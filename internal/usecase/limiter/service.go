// Package limiter wires the user store to the rate limit engine. It owns
// the translation between the persisted user record and the engine's
// Subject, and the per-operation deadlines on outbound calls.
package limiter

import (
	"context"
	"fmt"
	"time"

	"tierlimit/internal/domain/entity"
	"tierlimit/internal/repository"
	"tierlimit/pkg/ratelimit"
)

// Checker is the engine surface the service needs. *ratelimit.Engine
// satisfies it.
type Checker interface {
	Check(ctx context.Context, sub ratelimit.Subject) (ratelimit.Decision, error)
	Stats(ctx context.Context, sub ratelimit.Subject) (ratelimit.Stats, error)
}

// Service provides the rate limit use cases.
type Service struct {
	Repo   repository.UserRepository
	Engine Checker

	// UserStoreTimeout bounds each user store round trip. Zero means no
	// extra bound beyond the request context.
	UserStoreTimeout time.Duration
}

// Check fetches the user and asks the engine for a verdict. The counter
// is incremented as part of the check, so a denied request has already
// been counted.
func (s *Service) Check(ctx context.Context, userID string) (ratelimit.Decision, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return ratelimit.Decision{}, err
	}

	decision, err := s.Engine.Check(ctx, toSubject(user))
	if err != nil {
		return ratelimit.Decision{}, fmt.Errorf("check rate limit: %w", err)
	}
	return decision, nil
}

// Stats reports the user's current bucket without consuming from it.
func (s *Service) Stats(ctx context.Context, userID string) (ratelimit.Stats, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return ratelimit.Stats{}, err
	}

	stats, err := s.Engine.Stats(ctx, toSubject(user))
	if err != nil {
		return ratelimit.Stats{}, fmt.Errorf("rate limit stats: %w", err)
	}
	return stats, nil
}

// SetOverride validates and persists a partial override update. The write
// does not touch live counters: a bucket created under the old budget
// keeps its TTL, and the new budget applies from the next check.
func (s *Service) SetOverride(ctx context.Context, userID string, patch entity.OverridePatch) (*entity.Override, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if s.UserStoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.UserStoreTimeout)
		defer cancel()
	}

	override, err := s.Repo.UpdateOverride(ctx, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("update override: %w", err)
	}
	return override, nil
}

func (s *Service) getUser(ctx context.Context, userID string) (*entity.User, error) {
	if s.UserStoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.UserStoreTimeout)
		defer cancel()
	}

	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// toSubject maps the stored record onto the engine's view. The engine
// only ever sees a complete override; a record with any override column
// missing resolves from the tier alone.
func toSubject(user *entity.User) ratelimit.Subject {
	sub := ratelimit.Subject{
		ID:   user.ID,
		Tier: ratelimit.Tier(user.Tier),
	}
	o := user.Override
	if o != nil && o.Limit != nil && o.WindowSeconds != nil && o.ExpiresAt != nil {
		sub.Override = &ratelimit.Override{
			Limit:         *o.Limit,
			WindowSeconds: *o.WindowSeconds,
			ExpiresAt:     *o.ExpiresAt,
		}
	}
	return sub
}
