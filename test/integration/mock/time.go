package mock

import (
	"sync"
	"time"
)

// Time is a controllable clock. Once set, it keeps ticking from the chosen
// instant at wall-clock speed.
type Time struct {
	mu               sync.RWMutex
	currentStartTime time.Time
	updatedAt        time.Time
	location         *time.Location
}

func NewTime(location *time.Location) *Time {
	return &Time{
		currentStartTime: time.Now(),
		updatedAt:        time.Now(),
		location:         location,
	}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentStartTime = currentTime
	t.updatedAt = time.Now()
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	elapsed := time.Since(t.updatedAt)
	return t.currentStartTime.Add(elapsed).In(t.location)
}

func (t *Time) Location() *time.Location {
	return t.location
}
