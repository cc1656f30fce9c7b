package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// Sums are computed over integer cents so the result is exact on every dialect.
const sumCents = "CAST(COALESCE(SUM(%s), 0) AS BIGINT)"

// Sum returns the total amount of the user's entries within r.
func (r *ledgerRepository) Sum(ctx context.Context, userID uuid.UUID, rng valueobject.DateRange) (decimal.Decimal, error) {
	var cents int64
	err := r.db.WithContext(ctx).
		Table(r.table).
		Select(fmt.Sprintf(sumCents, "amount_cents")).
		Scopes(OwnedBy(userID), occurredWithin("occurred_at", rng)).
		Scan(&cents).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s: %w", r.table, err)
	}
	return valueobject.AmountFromCents(cents), nil
}

// SumByCategory returns the user's totals within r grouped by category name,
// ordered by name. Entries whose category is missing, soft-deleted or
// foreign fall under entity.UncategorizedLabel.
func (r *ledgerRepository) SumByCategory(ctx context.Context, userID uuid.UUID, rng valueobject.DateRange) ([]entity.CategoryTotal, error) {
	var results []struct {
		CategoryName string `gorm:"column:category_name"`
		TotalCents   int64  `gorm:"column:total_cents"`
	}

	err := r.db.WithContext(ctx).
		Table(r.table+" e").
		Select(fmt.Sprintf(
			"COALESCE(c.name, '%s') AS category_name, "+sumCents+" AS total_cents",
			entity.UncategorizedLabel, "e.amount_cents",
		)).
		Joins("LEFT JOIN categories c ON c.id = e.category_id AND c.user_id = e.user_id AND c.deleted_at IS NULL").
		Scopes(ownedByColumn("e.user_id", userID), occurredWithin("e.occurred_at", rng)).
		Group("category_name").
		Order("category_name").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group %s by category: %w", r.table, err)
	}

	totals := make([]entity.CategoryTotal, len(results))
	for i, res := range results {
		totals[i] = entity.CategoryTotal{
			CategoryName: res.CategoryName,
			Total:        valueobject.AmountFromCents(res.TotalCents),
		}
	}
	return totals, nil
}
