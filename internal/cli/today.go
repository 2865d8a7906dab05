package cli

import (
	"fmt"

	"github.com/julianstephens/upbeat/internal/scheduler"
	"github.com/julianstephens/upbeat/internal/utils"
)

type TodayCmd struct {
	Date string `help:"Show the list of another day (YYYY-MM-DD)."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = utils.Today(ctx.Tracker.Clock())
	} else if !utils.ValidateDateFormat(date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	prefs, err := ctx.Tracker.Preferences()
	if err != nil {
		return err
	}
	entries, err := ctx.Tracker.Day(date)
	if err != nil {
		return err
	}
	checks, err := ctx.Tracker.Checks()
	if err != nil {
		return err
	}

	done := make(map[string]bool)
	for _, ch := range checks {
		if ch.Date == date {
			done[ch.TaskID] = true
		}
	}

	fmt.Printf("%s  %s\n\n", date, prefs.DisplayMotto())
	if len(entries) == 0 {
		fmt.Println("Nothing planned. Add a task with 'upbeat task add' or apply the day template.")
		return nil
	}
	for _, e := range entries {
		fmt.Println(FormatEntry(e, done[e.Ref()]))
	}
	return nil
}

// FormatEntry renders one projection row.
func FormatEntry(e scheduler.Entry, done bool) string {
	mark := "○"
	if done {
		mark = "✓"
	}
	kind := ""
	if e.IsTemplate() {
		kind = " (template)"
	}
	return fmt.Sprintf("  %s %-28s %-8s %-12s %s", mark, e.Title()+kind, e.Category(), e.Window().Label(), e.Ref())
}
