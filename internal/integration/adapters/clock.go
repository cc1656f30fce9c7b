package adapters

import (
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock reading the wall time in loc.
func NewSystemClock(loc *time.Location) adapter.Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *systemClock) Location() *time.Location {
	return c.loc
}
