package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/upbeat/internal/constants"
)

// Weekdays is a required-weekday mask indexed by time.Weekday (Sunday = 0).
type Weekdays [7]bool

// Has reports whether wd is marked as required.
func (w Weekdays) Has(wd time.Weekday) bool {
	return w[wd]
}

// WeekdaysFrom builds a mask with exactly the given weekdays set.
func WeekdaysFrom(days []time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w[d] = true
	}
	return w
}

func (w Weekdays) String() string {
	var days []string
	for i, on := range w {
		if on {
			days = append(days, time.Weekday(i).String()[:3])
		}
	}
	if len(days) == 0 {
		return "none"
	}
	return strings.Join(days, ",")
}

func (w *Weekdays) UnmarshalJSON(data []byte) error {
	var raw []bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != len(w) {
		return fmt.Errorf("required weekdays must have %d entries, got %d", len(w), len(raw))
	}
	copy(w[:], raw)
	return nil
}

// Preferences holds per-user profile data and the day template.
type Preferences struct {
	Avatar           string         `json:"avatar,omitempty"`
	Motto            string         `json:"motto,omitempty"`
	RequiredWeekdays Weekdays       `json:"requiredWeekdays"`
	DayTemplate      []TemplateItem `json:"dayTemplate"`
}

// DefaultPreferences returns the preferences of a fresh account. Decoding
// JSON into the returned value keeps defaults for any absent field.
func DefaultPreferences() Preferences {
	return Preferences{
		Motto:            constants.DefaultMotto,
		RequiredWeekdays: constants.DefaultRequiredWeekdays,
		DayTemplate:      []TemplateItem{},
	}
}

// DisplayMotto falls back to the default motto when none is set.
func (p Preferences) DisplayMotto() string {
	if strings.TrimSpace(p.Motto) == "" {
		return constants.DefaultMotto
	}
	return p.Motto
}
