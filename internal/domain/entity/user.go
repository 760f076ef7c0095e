package entity

import (
	"time"
)

// User is a rate-limited principal as stored in the user store.
// The override fields are persisted as three nullable columns but are
// exposed here as a single optional Override record; translation between
// the two shapes happens at the persistence boundary.
type User struct {
	ID        string // canonical UUID string
	Tier      string
	Override  *Override
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Override is a per-user rate limit that supersedes the tier defaults
// while it is valid. All three fields are required for the override to
// ever take effect; a partially populated row is mapped to a nil Override
// only when every column is NULL, otherwise the populated values are kept
// so the stats and admin surfaces can report them.
type Override struct {
	Limit         *int
	WindowSeconds *int
	ExpiresAt     *time.Time
}

// ActiveAt reports whether the override supersedes the tier at the given
// instant: all three fields present and the expiry strictly in the future.
func (o *Override) ActiveAt(now time.Time) bool {
	if o == nil {
		return false
	}
	if o.Limit == nil || o.WindowSeconds == nil || o.ExpiresAt == nil {
		return false
	}
	return o.ExpiresAt.After(now)
}

// IsEmpty reports whether no override field is set.
func (o *Override) IsEmpty() bool {
	return o == nil || (o.Limit == nil && o.WindowSeconds == nil && o.ExpiresAt == nil)
}

// OverridePatch is a partial update of the override columns. Nil fields
// are left untouched by the writer.
type OverridePatch struct {
	Limit         *int
	WindowSeconds *int
	ExpiresAt     *time.Time
}

// IsEmpty reports whether the patch carries no fields.
func (p OverridePatch) IsEmpty() bool {
	return p.Limit == nil && p.WindowSeconds == nil && p.ExpiresAt == nil
}

// Validate checks the supplied patch fields. Positivity of numeric fields
// is enforced; cross-field consistency is deliberately not (a patch that
// leaves the override inactive is legal and means "no override").
func (p OverridePatch) Validate() error {
	if p.IsEmpty() {
		return &ValidationError{Field: "body", Message: "at least one override field must be supplied"}
	}
	if p.Limit != nil && *p.Limit <= 0 {
		return &ValidationError{Field: "overrideLimit", Message: "must be a positive integer"}
	}
	if p.WindowSeconds != nil && *p.WindowSeconds <= 0 {
		return &ValidationError{Field: "overrideWindowSeconds", Message: "must be a positive integer"}
	}
	return nil
}
