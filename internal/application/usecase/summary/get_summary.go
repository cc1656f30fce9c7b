package summary

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetSummaryInput represents the input for the totals summary.
type GetSummaryInput struct {
	UserID uuid.UUID
}

// WindowTotals pairs a window with its totals.
type WindowTotals struct {
	Window entity.Window
	Totals entity.Totals
}

// GetSummaryOutput holds one entry per window, in entity.Windows order.
type GetSummaryOutput struct {
	Windows []WindowTotals
}

// GetSummaryUseCase computes income, expense and balance for every window.
type GetSummaryUseCase struct {
	expenses adapter.LedgerAggregator
	incomes  adapter.LedgerAggregator
	clock    adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(expenses, incomes adapter.LedgerAggregator, clock adapter.Clock) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		expenses: expenses,
		incomes:  incomes,
		clock:    clock,
	}
}

// Execute computes every window independently and concurrently.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	now := uc.clock.Now().In(uc.clock.Location())

	incomes := make([]decimal.Decimal, len(entity.Windows))
	expenses := make([]decimal.Decimal, len(entity.Windows))

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range entity.Windows {
		rng := WindowRange(w, now)
		g.Go(func() error {
			total, err := uc.incomes.Sum(gctx, input.UserID, rng)
			incomes[i] = total
			return err
		})
		g.Go(func() error {
			total, err := uc.expenses.Sum(gctx, input.UserID, rng)
			expenses[i] = total
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeSummaryUnavailable,
			"failed to compute summary",
			err,
		)
	}

	out := &GetSummaryOutput{Windows: make([]WindowTotals, len(entity.Windows))}
	for i, w := range entity.Windows {
		out.Windows[i] = WindowTotals{
			Window: w,
			Totals: entity.Totals{Income: incomes[i], Expense: expenses[i]},
		}
	}
	return out, nil
}
