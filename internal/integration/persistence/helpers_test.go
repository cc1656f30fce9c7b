package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	user := entity.NewUser(username, username+"@example.com", "", "hash")
	if err := NewUserRepository(db).CreateWithProfile(context.Background(), user, entity.NewProfile(user.ID)); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createCategory(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, kind entity.CategoryKind) *entity.Category {
	t.Helper()
	category := entity.NewCategory(userID, name, kind)
	if err := NewCategoryRepository(db).Create(context.Background(), category); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

func createEntry(t *testing.T, repo *ledgerRepository, userID uuid.UUID, amount string, categoryID *uuid.UUID, at time.Time) *entity.LedgerEntry {
	t.Helper()
	entry := entity.NewLedgerEntry(repo.kind, userID, decimal.RequireFromString(amount), categoryID, "", at)
	if err := repo.Create(context.Background(), entry); err != nil {
		t.Fatalf("failed to create entry: %v", err)
	}
	return entry
}
