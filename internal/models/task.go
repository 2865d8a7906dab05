package models

import (
	"fmt"

	"github.com/julianstephens/upbeat/internal/constants"
)

// TimeWindow is an optional daily time-of-day range. Start and End are HH:MM
// and are not bound to a calendar date; Start > End means the window crosses
// midnight.
type TimeWindow struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"` // HH:MM format
	End     string `json:"end"`   // HH:MM format
}

// Label returns "HH:MM-HH:MM" for an enabled window and "any time" otherwise.
func (w TimeWindow) Label() string {
	if !w.Enabled {
		return "any time"
	}
	return fmt.Sprintf("%s-%s", w.Start, w.End)
}

// DefaultWindow is the disabled 08:00-22:00 window new items start with.
func DefaultWindow() TimeWindow {
	return TimeWindow{Start: constants.DefaultWindowStart, End: constants.DefaultWindowEnd}
}

// Task is a persistent, user-defined recurring task.
type Task struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Category string     `json:"category"`
	Window   TimeWindow `json:"slot"`
}

// TemplateItem has the shape of a Task but no identity beyond its position
// in the day template or in a planned day.
type TemplateItem struct {
	Title    string     `json:"title"`
	Category string     `json:"category"`
	Window   TimeWindow `json:"slot"`
}

// DefaultTemplateItem is the item added to the day template when the user
// does not supply any fields.
func DefaultTemplateItem() TemplateItem {
	return TemplateItem{
		Title:    constants.DefaultTemplateTitle,
		Category: constants.CategoryStudy,
		Window:   DefaultWindow(),
	}
}

// CloneTemplate returns a copy of items that shares no memory with the input.
// A nil input yields an empty, non-nil slice.
func CloneTemplate(items []TemplateItem) []TemplateItem {
	out := make([]TemplateItem, len(items))
	copy(out, items)
	return out
}
