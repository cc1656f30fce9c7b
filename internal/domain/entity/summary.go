package entity

import "github.com/shopspring/decimal"

// Window is a fixed calendar period used to bound aggregation.
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
	WindowTotal Window = "total"
)

// Windows lists every summary window in presentation order.
var Windows = []Window{WindowToday, WindowWeek, WindowMonth, WindowYear, WindowTotal}

// Totals holds the income and expense sums of one window.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Balance is always derived, never stored.
func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// CategoryTotal is one row of a grouped sum.
type CategoryTotal struct {
	CategoryName string
	Total        decimal.Decimal
}

// CategoryBreakdown holds the grouped sums of one window for both collections.
type CategoryBreakdown struct {
	Incomes  []CategoryTotal
	Expenses []CategoryTotal
}
