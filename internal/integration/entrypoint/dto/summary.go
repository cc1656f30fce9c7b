package dto

import (
	"github.com/expense-tracker/backend/internal/application/usecase/summary"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// TotalsResponse is the income, expense and balance of one window.
type TotalsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// SummaryResponse holds the totals of every window.
type SummaryResponse struct {
	Today TotalsResponse `json:"today"`
	Week  TotalsResponse `json:"week"`
	Month TotalsResponse `json:"month"`
	Year  TotalsResponse `json:"year"`
	Total TotalsResponse `json:"total"`
}

// CategoryTotalResponse is one grouped row.
type CategoryTotalResponse struct {
	CategoryName string `json:"category_name"`
	Total        string `json:"total"`
}

// BreakdownResponse holds the grouped rows of one window.
type BreakdownResponse struct {
	Incomes  []CategoryTotalResponse `json:"incomes"`
	Expenses []CategoryTotalResponse `json:"expenses"`
}

// CategorySummaryResponse holds the breakdown of every window.
type CategorySummaryResponse struct {
	Today BreakdownResponse `json:"today"`
	Week  BreakdownResponse `json:"week"`
	Month BreakdownResponse `json:"month"`
	Year  BreakdownResponse `json:"year"`
	Total BreakdownResponse `json:"total"`
}

// ToSummaryResponse converts the summary use case output.
func ToSummaryResponse(out *summary.GetSummaryOutput) SummaryResponse {
	var resp SummaryResponse
	for _, wt := range out.Windows {
		*windowSlot(&resp.Today, &resp.Week, &resp.Month, &resp.Year, &resp.Total, wt.Window) = TotalsResponse{
			Income:  valueobject.FormatAmount(wt.Totals.Income),
			Expense: valueobject.FormatAmount(wt.Totals.Expense),
			Balance: valueobject.FormatAmount(wt.Totals.Balance()),
		}
	}
	return resp
}

// ToCategorySummaryResponse converts the category summary use case output.
func ToCategorySummaryResponse(out *summary.GetCategorySummaryOutput) CategorySummaryResponse {
	var resp CategorySummaryResponse
	for _, wb := range out.Windows {
		*windowSlot(&resp.Today, &resp.Week, &resp.Month, &resp.Year, &resp.Total, wb.Window) = BreakdownResponse{
			Incomes:  toCategoryTotals(wb.Breakdown.Incomes),
			Expenses: toCategoryTotals(wb.Breakdown.Expenses),
		}
	}
	return resp
}

func windowSlot[T any](today, week, month, year, total *T, w entity.Window) *T {
	switch w {
	case entity.WindowToday:
		return today
	case entity.WindowWeek:
		return week
	case entity.WindowMonth:
		return month
	case entity.WindowYear:
		return year
	default:
		return total
	}
}

func toCategoryTotals(rows []entity.CategoryTotal) []CategoryTotalResponse {
	out := make([]CategoryTotalResponse, len(rows))
	for i, row := range rows {
		out[i] = CategoryTotalResponse{
			CategoryName: row.CategoryName,
			Total:        valueobject.FormatAmount(row.Total),
		}
	}
	return out
}
