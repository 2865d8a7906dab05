// Package stats derives completion counts from a user's checks. Every
// function here is pure: the inputs are never modified.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/utils"
)

// Counts holds the number of checks per date and per task reference.
type Counts struct {
	ByDate map[string]int
	ByTask map[string]int
	Total  int
}

// DayCount is one point of a daily series.
type DayCount struct {
	Date  string
	Count int
}

// TaskTotal is the all-time number of checks for a persistent task.
type TaskTotal struct {
	TaskID string
	Title  string
	Count  int
	Window string
}

// Aggregate counts every check, including make-ups and checks against
// template entries or removed tasks.
func Aggregate(checks []models.Check) Counts {
	c := Counts{
		ByDate: make(map[string]int),
		ByTask: make(map[string]int),
	}
	for _, ch := range checks {
		c.ByDate[ch.Date]++
		c.ByTask[ch.TaskID]++
		c.Total++
	}
	return c
}

// Series returns exactly days consecutive dates ending at today, oldest
// first, with the number of checks recorded on each.
func Series(c Counts, today time.Time, days int) []DayCount {
	dates := utils.DaysBack(today, days)
	series := make([]DayCount, len(dates))
	for i, d := range dates {
		series[i] = DayCount{Date: d, Count: c.ByDate[d]}
	}
	return series
}

// Sum adds up the counts of a series.
func Sum(series []DayCount) int {
	total := 0
	for _, p := range series {
		total += p.Count
	}
	return total
}

// Peak returns the largest count of a series, at least 1 so it can scale bars.
func Peak(series []DayCount) int {
	peak := 1
	for _, p := range series {
		if p.Count > peak {
			peak = p.Count
		}
	}
	return peak
}

// TaskTotals returns one row per persistent task sorted by count, highest
// first. Ties keep the order of tasks.
func TaskTotals(c Counts, tasks []models.Task) []TaskTotal {
	rows := make([]TaskTotal, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, TaskTotal{
			TaskID: t.ID,
			Title:  t.Title,
			Count:  c.ByTask[t.ID],
			Window: t.Window.Label(),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows
}

// Window is a trailing series and its total.
type Window struct {
	Days   int
	Series []DayCount
	Total  int
}

// Report bundles everything the statistics views show.
type Report struct {
	Today   string
	Windows []Window
	Tasks   []TaskTotal
	Total   int
	MakeUps int
	InTime  int
}

// BuildReport computes a series for each trailing window plus per-task totals.
func BuildReport(checks []models.Check, tasks []models.Task, today time.Time, windows []int) Report {
	c := Aggregate(checks)
	r := Report{
		Today: utils.FormatDate(today),
		Tasks: TaskTotals(c, tasks),
		Total: c.Total,
	}
	for _, days := range windows {
		s := Series(c, today, days)
		r.Windows = append(r.Windows, Window{Days: days, Series: s, Total: Sum(s)})
	}
	for _, ch := range checks {
		if ch.MakeUp {
			r.MakeUps++
		}
		if ch.InTime {
			r.InTime++
		}
	}
	return r
}

// Markdown renders the report as a markdown document.
func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Statistics\n\n")
	fmt.Fprintf(&b, "As of **%s**: %d check-ins in total, %d in time, %d made up.\n\n", r.Today, r.Total, r.InTime, r.MakeUps)

	for _, w := range r.Windows {
		fmt.Fprintf(&b, "## Last %d days\n\n", w.Days)
		fmt.Fprintf(&b, "Total: **%d** `%s`\n\n", w.Total, Sparkline(w.Series))
	}

	b.WriteString("## Per task\n\n")
	if len(r.Tasks) == 0 {
		b.WriteString("_No tasks yet._\n")
		return b.String()
	}
	b.WriteString("| Task | Window | Check-ins |\n|---|---|---:|\n")
	for _, t := range r.Tasks {
		fmt.Fprintf(&b, "| %s | %s | %d |\n", escapeCell(t.Title), t.Window, t.Count)
	}
	return b.String()
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws a series as a row of block characters.
func Sparkline(series []DayCount) string {
	peak := Peak(series)
	runes := make([]rune, len(series))
	for i, p := range series {
		level := p.Count * (len(sparkLevels) - 1) / peak
		runes[i] = sparkLevels[level]
	}
	return string(runes)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
