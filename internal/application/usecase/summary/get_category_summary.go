package summary

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetCategorySummaryInput represents the input for the category breakdown.
type GetCategorySummaryInput struct {
	UserID uuid.UUID
}

// WindowBreakdown pairs a window with its grouped sums.
type WindowBreakdown struct {
	Window    entity.Window
	Breakdown entity.CategoryBreakdown
}

// GetCategorySummaryOutput holds one entry per window, in entity.Windows order.
type GetCategorySummaryOutput struct {
	Windows []WindowBreakdown
}

// GetCategorySummaryUseCase computes per-category sums for every window.
type GetCategorySummaryUseCase struct {
	expenses adapter.LedgerAggregator
	incomes  adapter.LedgerAggregator
	clock    adapter.Clock
}

// NewGetCategorySummaryUseCase creates a new GetCategorySummaryUseCase instance.
func NewGetCategorySummaryUseCase(expenses, incomes adapter.LedgerAggregator, clock adapter.Clock) *GetCategorySummaryUseCase {
	return &GetCategorySummaryUseCase{
		expenses: expenses,
		incomes:  incomes,
		clock:    clock,
	}
}

// Execute computes every window independently and concurrently.
func (uc *GetCategorySummaryUseCase) Execute(ctx context.Context, input GetCategorySummaryInput) (*GetCategorySummaryOutput, error) {
	now := uc.clock.Now().In(uc.clock.Location())

	out := &GetCategorySummaryOutput{Windows: make([]WindowBreakdown, len(entity.Windows))}

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range entity.Windows {
		out.Windows[i].Window = w
		rng := WindowRange(w, now)
		slot := &out.Windows[i].Breakdown
		g.Go(func() error {
			rows, err := uc.incomes.SumByCategory(gctx, input.UserID, rng)
			slot.Incomes = nonNil(rows)
			return err
		})
		g.Go(func() error {
			rows, err := uc.expenses.SumByCategory(gctx, input.UserID, rng)
			slot.Expenses = nonNil(rows)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeSummaryUnavailable,
			"failed to compute category summary",
			err,
		)
	}
	return out, nil
}

func nonNil(rows []entity.CategoryTotal) []entity.CategoryTotal {
	if rows == nil {
		return []entity.CategoryTotal{}
	}
	return rows
}
