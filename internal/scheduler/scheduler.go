package scheduler

import (
	"fmt"
	"time"

	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/utils"
	"github.com/julianstephens/upbeat/internal/validation"
)

// TemplateRefPrefix starts every synthetic reference to a template entry.
const TemplateRefPrefix = "template:"

// Entry is one row of a day's projection. The set of implementations is
// closed: PersistentEntry and TemplateEntry.
type Entry interface {
	// Ref identifies the entry in a Check: the task id for persistent
	// entries, a synthetic reference for template entries.
	Ref() string
	Title() string
	Category() string
	Window() models.TimeWindow
	IsTemplate() bool

	entry()
}

// PersistentEntry is a user-defined task shown on every day.
type PersistentEntry struct {
	Task models.Task
}

func (e PersistentEntry) Ref() string               { return e.Task.ID }
func (e PersistentEntry) Title() string             { return e.Task.Title }
func (e PersistentEntry) Category() string          { return e.Task.Category }
func (e PersistentEntry) Window() models.TimeWindow { return e.Task.Window }
func (e PersistentEntry) IsTemplate() bool          { return false }
func (PersistentEntry) entry()                      {}

// TemplateEntry is an item of the planned-day snapshot for Date.
type TemplateEntry struct {
	Item        models.TemplateItem
	SourceIndex int
	Date        string
}

func (e TemplateEntry) Ref() string               { return TemplateRef(e.Date, e.SourceIndex) }
func (e TemplateEntry) Title() string             { return e.Item.Title }
func (e TemplateEntry) Category() string          { return e.Item.Category }
func (e TemplateEntry) Window() models.TimeWindow { return e.Item.Window }
func (e TemplateEntry) IsTemplate() bool          { return true }
func (TemplateEntry) entry()                      {}

// TemplateRef builds the reference stored in checks made against the
// index-th template item of date.
func TemplateRef(date string, index int) string {
	return fmt.Sprintf("%s%s:%d", TemplateRefPrefix, date, index)
}

type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// Project returns the entries shown on date: the persistent tasks in order,
// then one entry per item of the planned snapshot when planned is true.
// Neither input is modified and nothing is stored.
func (s *Scheduler) Project(tasks []models.Task, snapshot []models.TemplateItem, date string, planned bool) []Entry {
	entries := make([]Entry, 0, len(tasks)+len(snapshot))
	for _, t := range tasks {
		entries = append(entries, PersistentEntry{Task: t})
	}
	if !planned {
		return entries
	}
	for i, item := range snapshot {
		entries = append(entries, TemplateEntry{Item: item, SourceIndex: i, Date: date})
	}
	return entries
}

// ProjectDay is Project with the snapshot looked up in planned.
func (s *Scheduler) ProjectDay(tasks []models.Task, planned models.PlannedDays, date string) []Entry {
	snapshot, ok := planned.For(date)
	return s.Project(tasks, snapshot, date, ok)
}

// ApplyTemplate copies the day template onto each required weekday among
// the days consecutive dates starting at today, overwriting whatever was
// planned for them. Other dates keep their previous entry. The result is a
// new map; planned is left as is. The dates written are returned in order.
func (s *Scheduler) ApplyTemplate(prefs models.Preferences, planned models.PlannedDays, today time.Time, days int) (models.PlannedDays, []string, error) {
	if err := validation.ValidateDays(days); err != nil {
		return nil, nil, err
	}

	next := planned.Clone()
	var written []string
	for i := 0; i < days; i++ {
		day := utils.AddDays(today, i)
		if !prefs.RequiredWeekdays.Has(day.Weekday()) {
			continue
		}
		date := utils.FormatDate(day)
		next[date] = models.CloneTemplate(prefs.DayTemplate)
		written = append(written, date)
	}
	return next, written, nil
}
