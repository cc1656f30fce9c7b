package summary

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time           { return c.now }
func (c fixedClock) Location() *time.Location { return c.now.Location() }

type record struct {
	userID uuid.UUID
	at     time.Time
	amount decimal.Decimal
	label  string
}

// fakeAggregator computes sums in memory using DateRange.Contains.
type fakeAggregator struct {
	records []record
	err     error
}

func (f *fakeAggregator) Sum(_ context.Context, userID uuid.UUID, r valueobject.DateRange) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	total := decimal.Zero
	for _, rec := range f.records {
		if rec.userID == userID && r.Contains(rec.at) {
			total = total.Add(rec.amount)
		}
	}
	return total, nil
}

func (f *fakeAggregator) SumByCategory(_ context.Context, userID uuid.UUID, r valueobject.DateRange) ([]entity.CategoryTotal, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.CategoryTotal
	index := map[string]int{}
	for _, rec := range f.records {
		if rec.userID != userID || !r.Contains(rec.at) {
			continue
		}
		i, ok := index[rec.label]
		if !ok {
			i = len(out)
			index[rec.label] = i
			out = append(out, entity.CategoryTotal{CategoryName: rec.label, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(rec.amount)
	}
	return out, nil
}

func TestWindowRange(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, rome) }

	tests := []struct {
		name      string
		window    entity.Window
		now       time.Time
		wantStart *time.Time
		wantEnd   *time.Time
	}{
		{"today", entity.WindowToday, time.Date(2024, 3, 13, 23, 59, 0, 0, rome), ptr(day(2024, 3, 13)), ptr(day(2024, 3, 13))},
		{"week from wednesday", entity.WindowWeek, time.Date(2024, 3, 13, 9, 0, 0, 0, rome), ptr(day(2024, 3, 11)), nil},
		{"week from monday", entity.WindowWeek, time.Date(2024, 3, 11, 0, 5, 0, 0, rome), ptr(day(2024, 3, 11)), nil},
		{"week from sunday", entity.WindowWeek, time.Date(2024, 3, 17, 22, 0, 0, 0, rome), ptr(day(2024, 3, 11)), nil},
		{"week across month", entity.WindowWeek, time.Date(2024, 3, 2, 12, 0, 0, 0, rome), ptr(day(2024, 2, 26)), nil},
		{"month", entity.WindowMonth, time.Date(2024, 3, 31, 12, 0, 0, 0, rome), ptr(day(2024, 3, 1)), nil},
		{"year", entity.WindowYear, time.Date(2024, 12, 31, 12, 0, 0, 0, rome), ptr(day(2024, 1, 1)), nil},
		{"total", entity.WindowTotal, time.Date(2024, 3, 13, 12, 0, 0, 0, rome), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := WindowRange(tt.window, tt.now)
			if !sameBound(r.Start, tt.wantStart) {
				t.Errorf("start: expected %v, got %v", tt.wantStart, r.Start)
			}
			if !sameBound(r.End, tt.wantEnd) {
				t.Errorf("end: expected %v, got %v", tt.wantEnd, r.End)
			}
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }

func sameBound(got, want *time.Time) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	return got.Equal(*want)
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC) // Wednesday
	alice, bob := uuid.New(), uuid.New()
	money := decimal.RequireFromString

	incomes := &fakeAggregator{records: []record{
		{alice, now.Add(-time.Hour), money("500.00"), "Salary"},
		{alice, now.AddDate(0, -2, 0), money("0.10"), "Salary"},
		{bob, now, money("9999"), "Salary"},
	}}
	expenses := &fakeAggregator{records: []record{
		{alice, now.Add(-2 * time.Hour), money("100.00"), "Food"},
		{alice, now.AddDate(0, 0, -2), money("0.20"), "Food"},  // Monday
		{alice, now.AddDate(0, 0, -3), money("0.30"), "Food"},  // last Sunday
		{alice, now.AddDate(-1, 0, 0), money("1000"), "Rent"}, // last year
	}}

	out, err := NewGetSummaryUseCase(expenses, incomes, fixedClock{now}).Execute(ctx, GetSummaryInput{UserID: alice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[entity.Window][3]string{
		entity.WindowToday: {"500.00", "100.00", "400.00"},
		entity.WindowWeek:  {"500.00", "100.20", "399.80"},
		entity.WindowMonth: {"500.00", "100.50", "399.50"},
		entity.WindowYear:  {"500.10", "100.50", "399.60"},
		entity.WindowTotal: {"500.10", "1100.50", "-600.40"},
	}
	if len(out.Windows) != len(entity.Windows) {
		t.Fatalf("expected %d windows, got %d", len(entity.Windows), len(out.Windows))
	}
	for i, wt := range out.Windows {
		if wt.Window != entity.Windows[i] {
			t.Errorf("position %d: expected %s, got %s", i, entity.Windows[i], wt.Window)
		}
		w := want[wt.Window]
		got := [3]string{
			valueobject.FormatAmount(wt.Totals.Income),
			valueobject.FormatAmount(wt.Totals.Expense),
			valueobject.FormatAmount(wt.Totals.Balance()),
		}
		if got != w {
			t.Errorf("%s: expected %v, got %v", wt.Window, w, got)
		}
	}
}

func TestGetSummary_EmptyLedger(t *testing.T) {
	out, err := NewGetSummaryUseCase(&fakeAggregator{}, &fakeAggregator{}, fixedClock{time.Now()}).
		Execute(context.Background(), GetSummaryInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, wt := range out.Windows {
		if !wt.Totals.Income.IsZero() || !wt.Totals.Expense.IsZero() || !wt.Totals.Balance().IsZero() {
			t.Errorf("%s: expected zero totals, got %+v", wt.Window, wt.Totals)
		}
	}
}

func TestGetCategorySummary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC)
	alice := uuid.New()
	money := decimal.RequireFromString

	expenses := &fakeAggregator{records: []record{
		{alice, now, money("10"), "Food"},
		{alice, now, money("5"), entity.UncategorizedLabel},
		{alice, now.AddDate(0, -1, 0), money("7"), "Food"},
	}}

	out, err := NewGetCategorySummaryUseCase(expenses, &fakeAggregator{}, fixedClock{now}).
		Execute(ctx, GetCategorySummaryInput{UserID: alice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	today := out.Windows[0]
	if today.Window != entity.WindowToday {
		t.Fatalf("expected today first, got %s", today.Window)
	}
	if today.Breakdown.Incomes == nil || len(today.Breakdown.Incomes) != 0 {
		t.Errorf("expected an empty, non-nil income list, got %#v", today.Breakdown.Incomes)
	}
	if len(today.Breakdown.Expenses) != 2 {
		t.Fatalf("expected 2 expense groups today, got %+v", today.Breakdown.Expenses)
	}

	total := out.Windows[4]
	for _, row := range total.Breakdown.Expenses {
		if row.CategoryName == "Food" && valueobject.FormatAmount(row.Total) != "17.00" {
			t.Errorf("expected Food total 17.00, got %s", row.Total)
		}
	}
}

func TestSummary_PropagatesFailures(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewGetSummaryUseCase(&fakeAggregator{err: boom}, &fakeAggregator{}, fixedClock{time.Now()}).
		Execute(context.Background(), GetSummaryInput{UserID: uuid.New()})

	var summaryErr *domainerror.SummaryError
	if !errors.As(err, &summaryErr) || summaryErr.Code != domainerror.ErrCodeSummaryUnavailable {
		t.Fatalf("expected SummaryError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected the cause to be wrapped")
	}

	_, err = NewGetCategorySummaryUseCase(&fakeAggregator{}, &fakeAggregator{err: boom}, fixedClock{time.Now()}).
		Execute(context.Background(), GetCategorySummaryInput{UserID: uuid.New()})
	if !errors.Is(err, boom) {
		t.Errorf("expected category summary to fail with the cause, got %v", err)
	}
}
