package validation

import (
	"strings"
	"time"

	"github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/utils"
)

// ValidateTaskTitle trims title and rejects it when nothing is left.
func ValidateTaskTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.Invalid("task title is required")
	}
	return title, nil
}

// ValidateCredentials trims the username and checks that both values are
// non-empty. The password is returned untouched.
func ValidateCredentials(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", errors.Invalid("username is required")
	}
	if password == "" {
		return "", errors.Invalid("password is required")
	}
	return username, nil
}

// ValidateWindow checks the HH:MM bounds of an enabled window. Disabled
// windows are accepted whatever their bounds hold.
func ValidateWindow(w models.TimeWindow) error {
	if !w.Enabled {
		return nil
	}
	if !utils.ValidateTimeFormat(w.Start) {
		return errors.Invalid("invalid window start %q, expected HH:MM", w.Start)
	}
	if !utils.ValidateTimeFormat(w.End) {
		return errors.Invalid("invalid window end %q, expected HH:MM", w.End)
	}
	return nil
}

// ValidateCheckDate checks that date is YYYY-MM-DD and not after today.
func ValidateCheckDate(date string, today time.Time) error {
	d, err := utils.ParseDateInLocation(date, today.Location())
	if err != nil {
		return errors.Invalid("invalid date %q, expected YYYY-MM-DD", date)
	}
	if d.After(today) {
		return errors.Invalid("cannot check in for %s, it is in the future", date)
	}
	return nil
}

// ValidateIndex checks that i addresses an element of a collection of size n.
func ValidateIndex(i, n int) error {
	if i < 0 || i >= n {
		return errors.Invalid("index %d out of range (have %d items)", i, n)
	}
	return nil
}

// ValidateDays checks a template horizon.
func ValidateDays(days int) error {
	if days <= 0 {
		return errors.Invalid("days must be positive, got %d", days)
	}
	return nil
}

// ParseWindow parses "HH:MM-HH:MM" into an enabled window. An empty string
// or "any" yields a disabled window with the default bounds.
func ParseWindow(s string) (models.TimeWindow, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "any") {
		return models.DefaultWindow(), nil
	}
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return models.TimeWindow{}, errors.Invalid("invalid window %q, expected HH:MM-HH:MM", s)
	}
	w := models.TimeWindow{Enabled: true, Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
	if err := ValidateWindow(w); err != nil {
		return models.TimeWindow{}, err
	}
	return w, nil
}
