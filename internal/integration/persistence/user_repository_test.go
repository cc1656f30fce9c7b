package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestUserRepository_CreateWithProfile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	alice := createUser(t, db, "alice")

	found, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != alice.ID {
		t.Errorf("expected %s, got %s", alice.ID, found.ID)
	}

	profile, err := repo.FindProfile(ctx, alice.ID)
	if err != nil {
		t.Fatalf("expected profile to exist: %v", err)
	}
	if profile.UserID != alice.ID {
		t.Errorf("profile bound to wrong user")
	}

	duplicate := entity.NewUser("alice", "other@example.com", "", "hash")
	if err := repo.CreateWithProfile(ctx, duplicate, entity.NewProfile(duplicate.ID)); err == nil {
		t.Fatal("expected unique username violation")
	}
	if _, err := repo.FindProfile(ctx, duplicate.ID); !errors.Is(err, domainerror.ErrProfileNotFound) {
		t.Errorf("profile must roll back with the user, got %v", err)
	}
}

func TestUserRepository_Exists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	createUser(t, db, "alice")

	tests := []struct {
		name  string
		check func() (bool, error)
		want  bool
	}{
		{"taken username", func() (bool, error) { return repo.ExistsByUsername(ctx, "alice") }, true},
		{"free username", func() (bool, error) { return repo.ExistsByUsername(ctx, "bob") }, false},
		{"taken email", func() (bool, error) { return repo.ExistsByEmail(ctx, "alice@example.com") }, true},
		{"free email", func() (bool, error) { return repo.ExistsByEmail(ctx, "bob@example.com") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.check()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	alice := createUser(t, db, "alice")

	profile, err := repo.FindProfile(ctx, alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	profile.ProfilePic = "https://cdn.example.com/alice.png"
	profile.UpdatedAt = time.Now().UTC()
	if err := repo.UpdateProfile(ctx, profile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile, err = repo.FindProfile(ctx, alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ProfilePic != "https://cdn.example.com/alice.png" {
		t.Errorf("profile pic not persisted, got %q", profile.ProfilePic)
	}
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	expenses := newLedgerRepository(db, entity.EntryKindExpense)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	food := createCategory(t, db, alice.ID, "Food", entity.CategoryKindExpense)
	createEntry(t, expenses, alice.ID, "10", &food.ID, time.Now())
	bobEntry := createEntry(t, expenses, bob.ID, "5", nil, time.Now())

	if err := repo.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindByID(ctx, alice.ID); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	var remaining int64
	db.Table("expenses").Count(&remaining)
	if remaining != 1 {
		t.Errorf("expected only bob's expense to remain, got %d rows", remaining)
	}
	if _, err := expenses.FindByID(ctx, bob.ID, bobEntry.ID); err != nil {
		t.Errorf("other users' rows must survive: %v", err)
	}
	var categories int64
	db.Unscoped().Table("categories").Where("user_id = ?", alice.ID).Count(&categories)
	if categories != 0 {
		t.Errorf("expected categories to be removed, got %d", categories)
	}

	if err := repo.Delete(ctx, alice.ID); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("second delete: expected ErrUserNotFound, got %v", err)
	}
}

func TestTokenRepository_RefreshLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTokenRepository(db)
	alice := createUser(t, db, "alice")

	if err := repo.SaveRefreshToken(ctx, "t1", alice.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SaveRefreshToken(ctx, "t2", alice.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SaveRefreshToken(ctx, "expired", alice.ID, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check := func(token string, want bool) {
		t.Helper()
		got, err := repo.IsRefreshTokenValid(ctx, token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("token %s: valid = %v, want %v", token, got, want)
		}
	}

	check("t1", true)
	check("expired", false)
	check("unknown", false)

	if err := repo.InvalidateRefreshToken(ctx, "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	check("t1", false)
	check("t2", true)

	if err := repo.InvalidateAllUserRefreshTokens(ctx, alice.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	check("t2", false)
}
