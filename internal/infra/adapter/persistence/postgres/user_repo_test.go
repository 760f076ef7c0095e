package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"tierlimit/internal/domain/entity"
	"tierlimit/internal/infra/adapter/persistence/postgres"
)

/* ──────────────────────────────── helpers ──────────────────────────────── */

const userID = "0c7f1f77-bcf8-4c6d-9f5e-2f1a6f9b1a11"

func userRow(u *entity.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "tier",
		"override_limit", "override_window_seconds", "override_expiry",
		"created_at", "updated_at",
	})
	var limit, window any
	var expiry any
	if u.Override != nil {
		if u.Override.Limit != nil {
			limit = int64(*u.Override.Limit)
		}
		if u.Override.WindowSeconds != nil {
			window = int64(*u.Override.WindowSeconds)
		}
		if u.Override.ExpiresAt != nil {
			expiry = *u.Override.ExpiresAt
		}
	}
	return rows.AddRow(u.ID, u.Tier, limit, window, expiry, u.CreatedAt, u.UpdatedAt)
}

func intp(v int) *int { return &v }

/* ──────────────────────────────── 1. Get ──────────────────────────────── */

func TestUserRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now().UTC().Truncate(time.Second)
	expiry := now.Add(time.Hour)
	want := &entity.User{
		ID: userID, Tier: "premium",
		Override:  &entity.Override{Limit: intp(500), WindowSeconds: intp(30), ExpiresAt: &expiry},
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, tier, override_limit, override_window_seconds, override_expiry, created_at, updated_at`)).
		WithArgs(userID).
		WillReturnRows(userRow(want))

	repo := postgres.NewUserRepo(db)
	got, err := repo.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_Get_NoOverrideColumnsMeansNil(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now().UTC().Truncate(time.Second)
	want := &entity.User{ID: userID, Tier: "free", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(`FROM users`).
		WithArgs(userID).
		WillReturnRows(userRow(want))

	repo := postgres.NewUserRepo(db)
	got, err := repo.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got.Override != nil {
		t.Fatalf("all-NULL override columns must map to nil, got %+v", got.Override)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_Get_PartialOverrideKeepsPopulatedFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now().UTC().Truncate(time.Second)
	want := &entity.User{
		ID: userID, Tier: "free",
		Override:  &entity.Override{Limit: intp(500)},
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(`FROM users`).
		WithArgs(userID).
		WillReturnRows(userRow(want))

	repo := postgres.NewUserRepo(db)
	got, err := repo.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if got.Override.ActiveAt(now) {
		t.Fatal("a partial override must never be active")
	}
}

func TestUserRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`FROM users`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tier",
			"override_limit", "override_window_seconds", "override_expiry",
			"created_at", "updated_at",
		}))

	repo := postgres.NewUserRepo(db)
	if _, err := repo.Get(context.Background(), userID); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUserRepo_Get_StoreError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`FROM users`).
		WithArgs(userID).
		WillReturnError(errors.New("connection refused"))

	repo := postgres.NewUserRepo(db)
	if _, err := repo.Get(context.Background(), userID); !errors.Is(err, entity.ErrUserStore) {
		t.Fatalf("want ErrUserStore, got %v", err)
	}
}

/* ──────────────────────────── 2. UpdateOverride ──────────────────────────── */

func TestUserRepo_UpdateOverride_FullPatch(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	expiry := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	patch := entity.OverridePatch{Limit: intp(500), WindowSeconds: intp(30), ExpiresAt: &expiry}

	mock.ExpectQuery(regexp.QuoteMeta(
		`SET updated_at = now(), override_limit = $1, override_window_seconds = $2, override_expiry = $3`)).
		WithArgs(500, 30, expiry, userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"override_limit", "override_window_seconds", "override_expiry",
		}).AddRow(int64(500), int64(30), expiry))

	repo := postgres.NewUserRepo(db)
	got, err := repo.UpdateOverride(context.Background(), userID, patch)
	if err != nil {
		t.Fatalf("UpdateOverride err=%v", err)
	}
	want := &entity.Override{Limit: intp(500), WindowSeconds: intp(30), ExpiresAt: &expiry}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_UpdateOverride_PartialPatchWritesOnlySuppliedFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	patch := entity.OverridePatch{Limit: intp(500)}

	// Only the limit column appears in the SET clause; the other two keep
	// their stored values, which come back via RETURNING.
	mock.ExpectQuery(regexp.QuoteMeta(`SET updated_at = now(), override_limit = $1`)).
		WithArgs(500, userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"override_limit", "override_window_seconds", "override_expiry",
		}).AddRow(int64(500), nil, nil))

	repo := postgres.NewUserRepo(db)
	got, err := repo.UpdateOverride(context.Background(), userID, patch)
	if err != nil {
		t.Fatalf("UpdateOverride err=%v", err)
	}
	if got.Limit == nil || *got.Limit != 500 {
		t.Fatalf("limit not persisted: %+v", got)
	}
	if got.WindowSeconds != nil || got.ExpiresAt != nil {
		t.Fatalf("untouched fields must remain unset: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_UpdateOverride_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// RETURNING on a non-matching WHERE yields an empty result set.
	mock.ExpectQuery(`UPDATE users`).
		WithArgs(500, userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"override_limit", "override_window_seconds", "override_expiry",
		}))

	repo := postgres.NewUserRepo(db)
	_, err := repo.UpdateOverride(context.Background(), userID, entity.OverridePatch{Limit: intp(500)})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
