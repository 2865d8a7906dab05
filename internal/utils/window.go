package utils

import "fmt"

// Within reports whether the time of day t falls inside [start, end], all in
// HH:MM. When start > end the window wraps past midnight and t matches if it
// is at or after start, or at or before end. Both bounds are inclusive.
func Within(t, start, end string) (bool, error) {
	tm, err := ParseTimeToMinutes(t)
	if err != nil {
		return false, fmt.Errorf("invalid time %q: %w", t, err)
	}
	s, err := ParseTimeToMinutes(start)
	if err != nil {
		return false, fmt.Errorf("invalid window start %q: %w", start, err)
	}
	e, err := ParseTimeToMinutes(end)
	if err != nil {
		return false, fmt.Errorf("invalid window end %q: %w", end, err)
	}
	if s <= e {
		return tm >= s && tm <= e, nil
	}
	return tm >= s || tm <= e, nil
}
