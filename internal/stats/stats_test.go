package stats

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/upbeat/internal/models"
)

var today = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func TestAggregateAndSeries(t *testing.T) {
	checks := []models.Check{
		{Date: "2024-06-10", TaskID: "a"},
		{Date: "2024-06-10", TaskID: "b"},
		{Date: "2024-06-09", TaskID: "a", MakeUp: true},
	}

	c := Aggregate(checks)
	if c.Total != 3 {
		t.Errorf("Total = %d, want 3", c.Total)
	}
	if c.ByTask["a"] != 2 || c.ByTask["b"] != 1 {
		t.Errorf("ByTask = %v", c.ByTask)
	}

	series := Series(c, today, 3)
	want := []DayCount{
		{Date: "2024-06-08", Count: 0},
		{Date: "2024-06-09", Count: 1},
		{Date: "2024-06-10", Count: 2},
	}
	if !reflect.DeepEqual(series, want) {
		t.Errorf("Series = %+v, want %+v", series, want)
	}
}

func TestSeries_Length(t *testing.T) {
	c := Aggregate(nil)
	for _, days := range []int{1, 7, 30, 90} {
		s := Series(c, today, days)
		if len(s) != days {
			t.Errorf("Series(%d) has %d points", days, len(s))
		}
		if s[len(s)-1].Date != "2024-06-10" {
			t.Errorf("Series(%d) should end today, ends %s", days, s[len(s)-1].Date)
		}
	}
	if s := Series(c, today, 0); len(s) != 0 {
		t.Errorf("Series(0) = %+v", s)
	}
}

func TestTaskTotals_SortedStable(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Title: "Read"},
		{ID: "b", Title: "Walk", Window: models.TimeWindow{Enabled: true, Start: "07:00", End: "07:30"}},
		{ID: "c", Title: "Write"},
		{ID: "d", Title: "Sleep"},
	}
	checks := []models.Check{
		{TaskID: "b"}, {TaskID: "b"},
		{TaskID: "c"},
		{TaskID: "a"},
		{TaskID: "template:2024-06-10:0", Template: true},
		{TaskID: "removed"},
	}

	rows := TaskTotals(Aggregate(checks), tasks)

	var titles []string
	for _, r := range rows {
		titles = append(titles, r.Title)
	}
	want := []string{"Walk", "Read", "Write", "Sleep"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("order = %v, want %v", titles, want)
	}
	if rows[0].Window != "07:00-07:30" || rows[1].Window != "any time" {
		t.Errorf("unexpected window labels %+v", rows)
	}
	if rows[3].Count != 0 {
		t.Errorf("task without checks should count 0, got %d", rows[3].Count)
	}
}

func TestBuildReport(t *testing.T) {
	tasks := []models.Task{{ID: "a", Title: "Read"}}
	checks := []models.Check{
		{Date: "2024-06-10", TaskID: "a", InTime: true},
		{Date: "2024-06-09", TaskID: "a", MakeUp: true},
		{Date: "2024-01-01", TaskID: "a", InTime: true},
	}

	r := BuildReport(checks, tasks, today, []int{7, 30, 90})

	if len(r.Windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(r.Windows))
	}
	if r.Windows[0].Total != 2 || r.Windows[2].Total != 2 {
		t.Errorf("window totals = %d, %d", r.Windows[0].Total, r.Windows[2].Total)
	}
	if r.Total != 3 || r.MakeUps != 1 || r.InTime != 2 {
		t.Errorf("report counters = %+v", r)
	}

	md := r.Markdown()
	for _, want := range []string{"## Last 7 days", "## Last 90 days", "| Read | any time | 3 |"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]DayCount{{Count: 0}, {Count: 2}, {Count: 4}})
	if got != "▁▄█" {
		t.Errorf("Sparkline = %q", got)
	}
	if Sparkline(nil) != "" {
		t.Error("empty series should draw nothing")
	}
}
