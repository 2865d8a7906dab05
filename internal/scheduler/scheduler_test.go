package scheduler

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/upbeat/internal/models"
)

// Monday
var monday = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func stretch() models.TemplateItem {
	return models.TemplateItem{
		Title:    "Stretch",
		Category: "Fitness",
		Window:   models.TimeWindow{Enabled: true, Start: "07:00", End: "07:30"},
	}
}

func TestProject_NoSnapshotEqualsPersistentList(t *testing.T) {
	scheduler := New()
	tasks := []models.Task{
		{ID: "a", Title: "Read"},
		{ID: "b", Title: "Walk"},
	}

	entries := scheduler.Project(tasks, nil, "2024-06-10", false)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.IsTemplate() {
			t.Errorf("entry %d should be persistent", i)
		}
		if e.Ref() != tasks[i].ID {
			t.Errorf("entry %d ref = %q, want %q", i, e.Ref(), tasks[i].ID)
		}
	}
}

func TestProject_AppendsSnapshotAfterTasks(t *testing.T) {
	scheduler := New()
	tasks := []models.Task{{ID: "a", Title: "Read"}}
	snapshot := []models.TemplateItem{stretch(), {Title: "Journal"}}

	entries := scheduler.Project(tasks, snapshot, "2024-06-10", true)

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Title() != "Read" || entries[0].IsTemplate() {
		t.Errorf("first entry should be the persistent task, got %+v", entries[0])
	}

	te, ok := entries[1].(TemplateEntry)
	if !ok {
		t.Fatalf("second entry should be a TemplateEntry, got %T", entries[1])
	}
	if te.SourceIndex != 0 || te.Date != "2024-06-10" || te.Title() != "Stretch" {
		t.Errorf("unexpected template entry %+v", te)
	}
	if entries[2].Ref() != "template:2024-06-10:1" {
		t.Errorf("template ref = %q", entries[2].Ref())
	}
	if !strings.HasPrefix(entries[1].Ref(), TemplateRefPrefix) {
		t.Errorf("template ref %q should carry the template prefix", entries[1].Ref())
	}
}

func TestProject_EmptyPlannedDay(t *testing.T) {
	scheduler := New()
	tasks := []models.Task{{ID: "a", Title: "Read"}}

	entries := scheduler.Project(tasks, []models.TemplateItem{}, "2024-06-10", true)
	if len(entries) != 1 {
		t.Errorf("an empty planned day adds nothing, got %d entries", len(entries))
	}
}

func TestProject_DoesNotMutateInputs(t *testing.T) {
	scheduler := New()
	tasks := []models.Task{{ID: "a", Title: "Read"}}
	planned := models.PlannedDays{"2024-06-10": {stretch()}}

	tasksBefore := append([]models.Task(nil), tasks...)
	plannedBefore := planned.Clone()

	for i := 0; i < 3; i++ {
		scheduler.ProjectDay(tasks, planned, "2024-06-10")
	}

	if !reflect.DeepEqual(tasks, tasksBefore) {
		t.Errorf("tasks changed: %+v", tasks)
	}
	if !reflect.DeepEqual(planned, plannedBefore) {
		t.Errorf("planned days changed: %+v", planned)
	}
}

func TestApplyTemplate_RequiredWeekdaysOnly(t *testing.T) {
	scheduler := New()
	prefs := models.DefaultPreferences() // Sun-Thu
	prefs.DayTemplate = []models.TemplateItem{stretch()}

	next, written, err := scheduler.ApplyTemplate(prefs, models.PlannedDays{}, monday, 7)
	if err != nil {
		t.Fatalf("ApplyTemplate failed: %v", err)
	}

	// Mon..Sun: Fri 14 and Sat 15 are not required
	want := []string{"2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13", "2024-06-16"}
	if !reflect.DeepEqual(written, want) {
		t.Errorf("written = %v, want %v", written, want)
	}
	for _, d := range []string{"2024-06-14", "2024-06-15"} {
		if _, ok := next[d]; ok {
			t.Errorf("%s should not be planned", d)
		}
	}
	if items := next["2024-06-16"]; len(items) != 1 || items[0].Title != "Stretch" {
		t.Errorf("unexpected snapshot for Sunday: %+v", items)
	}
}

func TestApplyTemplate_Idempotent(t *testing.T) {
	scheduler := New()
	prefs := models.DefaultPreferences()
	prefs.DayTemplate = []models.TemplateItem{stretch()}

	once, _, err := scheduler.ApplyTemplate(prefs, models.PlannedDays{}, monday, 30)
	if err != nil {
		t.Fatalf("ApplyTemplate failed: %v", err)
	}
	twice, _, err := scheduler.ApplyTemplate(prefs, once, monday, 30)
	if err != nil {
		t.Fatalf("ApplyTemplate failed: %v", err)
	}

	if !reflect.DeepEqual(once, twice) {
		t.Error("applying the template twice should equal applying it once")
	}
}

func TestApplyTemplate_LeavesNonRequiredDaysUntouched(t *testing.T) {
	scheduler := New()
	prefs := models.DefaultPreferences()
	prefs.DayTemplate = []models.TemplateItem{stretch()}

	friday := []models.TemplateItem{{Title: "Old plan"}}
	planned := models.PlannedDays{"2024-06-14": friday}

	next, _, err := scheduler.ApplyTemplate(prefs, planned, monday, 7)
	if err != nil {
		t.Fatalf("ApplyTemplate failed: %v", err)
	}

	if !reflect.DeepEqual(next["2024-06-14"], friday) {
		t.Errorf("Friday entry changed: %+v", next["2024-06-14"])
	}
	if len(planned) != 1 {
		t.Errorf("input map was mutated: %+v", planned)
	}
}

func TestApplyTemplate_EmptyTemplateClears(t *testing.T) {
	scheduler := New()
	prefs := models.DefaultPreferences()
	planned := models.PlannedDays{"2024-06-10": {stretch()}}

	next, _, err := scheduler.ApplyTemplate(prefs, planned, monday, 1)
	if err != nil {
		t.Fatalf("ApplyTemplate failed: %v", err)
	}

	items, ok := next["2024-06-10"]
	if !ok {
		t.Fatal("planned day should still be present")
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected an empty non-nil list, got %#v", items)
	}
}

func TestApplyTemplate_SnapshotIsDeepCopy(t *testing.T) {
	scheduler := New()
	prefs := models.DefaultPreferences()
	prefs.DayTemplate = []models.TemplateItem{stretch()}

	next, _, err := scheduler.ApplyTemplate(prefs, nil, monday, 1)
	if err != nil {
		t.Fatalf("ApplyTemplate failed: %v", err)
	}

	prefs.DayTemplate[0].Title = "Changed later"
	if next["2024-06-10"][0].Title != "Stretch" {
		t.Error("editing the template must not change an applied day")
	}
}

func TestApplyTemplate_RejectsNonPositiveDays(t *testing.T) {
	scheduler := New()
	for _, days := range []int{0, -3} {
		if _, _, err := scheduler.ApplyTemplate(models.DefaultPreferences(), nil, monday, days); err == nil {
			t.Errorf("ApplyTemplate(days=%d) expected error", days)
		}
	}
}

func TestApplyTemplate_CalendarArithmeticAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("timezone data not available")
	}
	scheduler := New()
	prefs := models.DefaultPreferences()
	prefs.RequiredWeekdays = models.Weekdays{true, true, true, true, true, true, true}

	// DST ends on 2024-11-03
	start := time.Date(2024, 11, 2, 0, 30, 0, 0, loc)
	_, written, err := scheduler.ApplyTemplate(prefs, nil, start, 3)
	if err != nil {
		t.Fatalf("ApplyTemplate failed: %v", err)
	}

	want := []string{"2024-11-02", "2024-11-03", "2024-11-04"}
	if !reflect.DeepEqual(written, want) {
		t.Errorf("written = %v, want %v", written, want)
	}
}
