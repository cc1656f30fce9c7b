package valueobject

import (
	"errors"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date or timestamp cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// DateRange is an inclusive range of calendar dates. Either bound may be nil.
// The location of each bound defines the calendar its day is read in.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Unbounded returns a range matching every instant.
func Unbounded() DateRange {
	return DateRange{}
}

// Day returns the range covering the calendar day of d.
func Day(d time.Time) DateRange {
	day := StartOfDay(d)
	return DateRange{Start: &day, End: &day}
}

// Since returns the range starting on the calendar day of d with no end.
func Since(d time.Time) DateRange {
	day := StartOfDay(d)
	return DateRange{Start: &day}
}

// NewDateRange builds a range from optional bounds, truncating each to its day.
func NewDateRange(start, end *time.Time) DateRange {
	var r DateRange
	if start != nil {
		s := StartOfDay(*start)
		r.Start = &s
	}
	if end != nil {
		e := StartOfDay(*end)
		r.End = &e
	}
	return r
}

// Bounds converts the range into half-open UTC instants [from, until).
// A nil result means the side is unbounded.
func (r DateRange) Bounds() (from, until *time.Time) {
	if r.Start != nil {
		f := StartOfDay(*r.Start).UTC()
		from = &f
	}
	if r.End != nil {
		y, m, d := r.End.Date()
		u := time.Date(y, m, d+1, 0, 0, 0, 0, r.End.Location()).UTC()
		until = &u
	}
	return from, until
}

// Contains reports whether the instant t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	from, until := r.Bounds()
	if from != nil && t.Before(*from) {
		return false
	}
	if until != nil && !t.Before(*until) {
		return false
	}
	return true
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD date as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// ParseTimestamp accepts RFC 3339, a zone-less date-time read in loc, or a
// bare date meaning local midnight.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
