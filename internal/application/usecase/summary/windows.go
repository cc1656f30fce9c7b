// Package summary contains the summary use cases: totals and per-category
// breakdowns over fixed calendar windows.
package summary

import (
	"time"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// WindowRange returns the date range of window w as seen from now. The
// calendar is now's location. Only today has an end bound.
func WindowRange(w entity.Window, now time.Time) valueobject.DateRange {
	today := valueobject.StartOfDay(now)

	switch w {
	case entity.WindowToday:
		return valueobject.Day(today)
	case entity.WindowWeek:
		// Monday is day 0 of the week
		daysFromMonday := (int(today.Weekday()) + 6) % 7
		return valueobject.Since(today.AddDate(0, 0, -daysFromMonday))
	case entity.WindowMonth:
		return valueobject.Since(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()))
	case entity.WindowYear:
		return valueobject.Since(time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location()))
	default:
		return valueobject.Unbounded()
	}
}
