package adapter

import "time"

// Clock provides the current time in the viewer's calendar.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}
