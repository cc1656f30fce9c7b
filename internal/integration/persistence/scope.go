package persistence

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// OwnedBy restricts a query to the rows owned by userID. Every read and
// write of user data goes through it, so a foreign id behaves exactly like a
// missing one.
func OwnedBy(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return ownedByColumn("user_id", userID)
}

// ownedByColumn is OwnedBy for queries that need a qualified column, e.g. joins.
func ownedByColumn(column string, userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", userID)
	}
}

// occurredWithin restricts column to the half-open instants covered by r.
func occurredWithin(column string, r valueobject.DateRange) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		from, until := r.Bounds()
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if until != nil {
			db = db.Where(column+" < ?", *until)
		}
		return db
	}
}
