// Package postgres implements the user store repositories over a
// Postgres-compatible database (Supabase in production).
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tierlimit/internal/domain/entity"
	"tierlimit/internal/repository"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

// scanOverride maps the three nullable columns to the internal Override
// record. All-NULL rows map to nil; a partially populated row keeps the
// populated values so the admin surface can report them (it still never
// activates, activity requires the full trio).
func scanOverride(limit, window sql.NullInt64, expiry sql.NullTime) *entity.Override {
	if !limit.Valid && !window.Valid && !expiry.Valid {
		return nil
	}
	o := &entity.Override{}
	if limit.Valid {
		v := int(limit.Int64)
		o.Limit = &v
	}
	if window.Valid {
		v := int(window.Int64)
		o.WindowSeconds = &v
	}
	if expiry.Valid {
		t := expiry.Time
		o.ExpiresAt = &t
	}
	return o
}

func (repo *UserRepo) Get(ctx context.Context, id string) (*entity.User, error) {
	const query = `
SELECT id, tier, override_limit, override_window_seconds, override_expiry, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	var (
		user      entity.User
		ovrLimit  sql.NullInt64
		ovrWindow sql.NullInt64
		ovrExpiry sql.NullTime
	)
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Tier, &ovrLimit, &ovrWindow, &ovrExpiry,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w: %w", entity.ErrUserStore, err)
	}

	user.Override = scanOverride(ovrLimit, ovrWindow, ovrExpiry)
	return &user, nil
}

func (repo *UserRepo) UpdateOverride(ctx context.Context, id string, patch entity.OverridePatch) (*entity.Override, error) {
	// Only the supplied fields are written, in one statement that also
	// bumps updated_at.
	set := []string{"updated_at = now()"}
	args := []any{}
	arg := 1

	if patch.Limit != nil {
		set = append(set, fmt.Sprintf("override_limit = $%d", arg))
		args = append(args, *patch.Limit)
		arg++
	}
	if patch.WindowSeconds != nil {
		set = append(set, fmt.Sprintf("override_window_seconds = $%d", arg))
		args = append(args, *patch.WindowSeconds)
		arg++
	}
	if patch.ExpiresAt != nil {
		set = append(set, fmt.Sprintf("override_expiry = $%d", arg))
		args = append(args, *patch.ExpiresAt)
		arg++
	}

	query := fmt.Sprintf(`
UPDATE users
SET %s
WHERE id = $%d
RETURNING override_limit, override_window_seconds, override_expiry`,
		strings.Join(set, ", "), arg)
	args = append(args, id)

	var (
		ovrLimit  sql.NullInt64
		ovrWindow sql.NullInt64
		ovrExpiry sql.NullTime
	)
	err := repo.db.QueryRowContext(ctx, query, args...).Scan(&ovrLimit, &ovrWindow, &ovrExpiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateOverride: %w: %w", entity.ErrUserStore, err)
	}

	override := scanOverride(ovrLimit, ovrWindow, ovrExpiry)
	if override == nil {
		override = &entity.Override{}
	}
	return override, nil
}
