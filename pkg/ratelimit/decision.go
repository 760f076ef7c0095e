package ratelimit

import (
	"fmt"
)

// Decision is the outcome of one rate limit check. It is a value, not an
// error: a rate-limited request is a successful decision with a non-200
// HTTP mapping.
type Decision struct {
	// Allowed indicates whether the request is within the budget.
	Allowed bool

	// RetryAfterSeconds tells a denied caller how long to wait before the
	// bucket resets. Zero and meaningless when Allowed is true.
	RetryAfterSeconds int64
}

// NewAllowedDecision creates the decision for a request within its budget.
func NewAllowedDecision() Decision {
	return Decision{Allowed: true}
}

// NewDeniedDecision creates the decision for an over-budget request with the
// given retry delay in seconds.
func NewDeniedDecision(retryAfterSeconds int64) Decision {
	return Decision{Allowed: false, RetryAfterSeconds: retryAfterSeconds}
}

// String returns a human-readable representation of the decision.
func (d Decision) String() string {
	if d.Allowed {
		return "Decision{Allowed}"
	}
	return fmt.Sprintf("Decision{RateLimited, RetryAfter: %ds}", d.RetryAfterSeconds)
}
