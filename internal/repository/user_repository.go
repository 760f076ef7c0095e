package repository

import (
	"context"

	"tierlimit/internal/domain/entity"
)

// UserRepository reads and mutates user records in the user store.
//
// Get returns entity.ErrNotFound when no row matches the id.
// UpdateOverride writes only the fields supplied in the patch in a single
// statement, bumps updated_at, and returns the post-update override trio;
// it returns entity.ErrNotFound when no row matches.
type UserRepository interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	UpdateOverride(ctx context.Context, id string, patch entity.OverridePatch) (*entity.Override, error)
}
