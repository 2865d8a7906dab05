package utils

import (
	"time"

	"github.com/julianstephens/upbeat/internal/constants"
)

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock returns a clock for the IANA timezone name ("Local" or empty
// for the system timezone).
func NewSystemClock(timezone string) (SystemClock, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return SystemClock{}, err
	}
	return SystemClock{Location: loc}, nil
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Today returns the clock's current date (YYYY-MM-DD).
func Today(c Clock) string {
	return FormatDate(c.Now())
}

// TimeOfDay returns the clock's current time of day (HH:MM).
func TimeOfDay(c Clock) string {
	return c.Now().Format(constants.TimeFormat)
}
