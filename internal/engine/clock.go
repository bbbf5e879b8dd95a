package engine

import (
	"time"

	"github.com/tartampluch/go-calendar/internal/event"
)

// Clock abstracts time.Now() so "today" can be pinned in tests.
// Views such as upcoming/today/past and the birthday import read it.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today is the calendar date of c.Now() in its own location.
func Today(c Clock) event.Date {
	return event.DateOf(c.Now())
}
