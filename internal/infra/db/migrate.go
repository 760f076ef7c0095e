package db

import (
	"database/sql"
)

// MigrateUp creates the users table if it does not exist. The three
// override columns are nullable and interpreted as a group: all present
// with a future expiry means the override supersedes the tier.
func MigrateUp(database *sql.DB) error {
	if _, err := database.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id                      UUID PRIMARY KEY,
    tier                    TEXT NOT NULL DEFAULT 'free',
    override_limit          INTEGER,
    override_window_seconds INTEGER,
    override_expiry         TIMESTAMPTZ,
    created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at              TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := database.Exec(
		`CREATE INDEX IF NOT EXISTS idx_users_tier ON users(tier)`); err != nil {
		return err
	}

	return nil
}
