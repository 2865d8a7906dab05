package tracker

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/upbeat/internal/checkin"
	"github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/scheduler"
	"github.com/julianstephens/upbeat/internal/storage"
	"github.com/julianstephens/upbeat/internal/utils"
)

// Monday
var testNow = time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

type recordingSink struct {
	messages []string
}

func (r *recordingSink) Notify(text string) error {
	r.messages = append(r.messages, text)
	return nil
}

type countingBackuper struct {
	calls int
}

func (c *countingBackuper) CreateBackup() (string, error) {
	c.calls++
	return "backup.db", nil
}

func newService(t *testing.T, opts ...Option) (*Service, *recordingSink) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "upbeat.json"))
	require.NoError(t, store.Init())

	sink := &recordingSink{}
	s := New(store, utils.FixedClock{T: testNow}, append([]Option{WithNotifier(sink)}, opts...)...)
	s.cost = bcrypt.MinCost

	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s, sink
}

func loggedIn(t *testing.T, opts ...Option) (*Service, *recordingSink) {
	t.Helper()
	s, sink := newService(t, opts...)
	_, err := s.Register("alice", "pw123")
	require.NoError(t, err)
	return s, sink
}

func titles(entries []scheduler.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title()
	}
	return out
}

func TestEndToEnd(t *testing.T) {
	s, sink := newService(t)

	acc, err := s.Register("alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.Username)

	_, err = s.AddTask("Read", "", models.DefaultWindow())
	require.NoError(t, err)

	check, err := s.CheckIn("Read", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", check.Date)
	assert.True(t, check.InTime)
	assert.False(t, check.MakeUp)

	checks, err := s.Checks()
	require.NoError(t, err)
	assert.Len(t, checks, 1)

	_, err = s.AddTemplateItem(models.TemplateItem{Title: "Stretch"})
	require.NoError(t, err)
	_, err = s.SetWeekdays(models.WeekdaysFrom([]time.Weekday{time.Monday}))
	require.NoError(t, err)

	written, err := s.ApplyTemplate(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-10"}, written)

	entries, err := s.Today()
	require.NoError(t, err)
	assert.Equal(t, []string{"Read", "Stretch"}, titles(entries))
	assert.False(t, entries[0].IsTemplate())
	assert.True(t, entries[1].IsTemplate())

	assert.Equal(t, []string{checkin.MessageCheckedIn, TemplateMessage(1)}, sink.messages)
}

func TestOperationsRequireSession(t *testing.T) {
	s, _ := newService(t)

	_, err := s.AddTask("Read", "", models.DefaultWindow())
	assert.ErrorIs(t, err, errors.ErrNoSession)
	_, err = s.Today()
	assert.ErrorIs(t, err, errors.ErrNoSession)
	_, err = s.Stats()
	assert.ErrorIs(t, err, errors.ErrNoSession)
	_, err = s.Import([]byte(`{}`))
	assert.ErrorIs(t, err, errors.ErrNoSession)
}

func TestAddTaskPrependsAndValidates(t *testing.T) {
	s, _ := loggedIn(t)

	_, err := s.AddTask("  ", "", models.DefaultWindow())
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = s.AddTask("Run", "Fitness", models.TimeWindow{Enabled: true, Start: "7am", End: "09:00"})
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = s.AddTask("Read", "", models.DefaultWindow())
	require.NoError(t, err)
	run, err := s.AddTask("Run", "Fitness", models.TimeWindow{Enabled: true, Start: "07:00", End: "09:00"})
	require.NoError(t, err)

	tasks, err := s.ListTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, run, tasks[0])
	assert.Equal(t, "Study", tasks[1].Category)
}

func TestRemoveTaskKeepsChecks(t *testing.T) {
	s, _ := loggedIn(t)
	task, err := s.AddTask("Read", "", models.DefaultWindow())
	require.NoError(t, err)
	_, err = s.CheckIn(task.ID, "")
	require.NoError(t, err)

	removed, err := s.RemoveTask("read")
	require.NoError(t, err)
	assert.Equal(t, task.ID, removed.ID)

	tasks, err := s.ListTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	checks, err := s.Checks()
	require.NoError(t, err)
	assert.Len(t, checks, 1)

	_, err = s.RemoveTask("read")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCheckInMakeUpAndWindow(t *testing.T) {
	s, sink := loggedIn(t)
	_, err := s.AddTask("Run", "Fitness", models.TimeWindow{Enabled: true, Start: "06:00", End: "08:00"})
	require.NoError(t, err)

	check, err := s.CheckIn("Run", "2024-06-08")
	require.NoError(t, err)
	assert.True(t, check.MakeUp)
	assert.False(t, check.InTime)
	assert.Equal(t, []string{checkin.MessageMadeUp}, sink.messages)

	_, err = s.CheckIn("Run", "2024-06-11")
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = s.CheckIn("Swim", "")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	checks, err := s.Checks()
	require.NoError(t, err)
	assert.Len(t, checks, 1)
}

func TestChecksAreNewestFirst(t *testing.T) {
	s, _ := loggedIn(t)
	_, err := s.AddTask("Read", "", models.DefaultWindow())
	require.NoError(t, err)

	first, err := s.CheckIn("Read", "2024-06-09")
	require.NoError(t, err)
	second, err := s.CheckIn("Read", "")
	require.NoError(t, err)

	checks, err := s.Checks()
	require.NoError(t, err)
	require.Len(t, checks, 2)
	assert.Equal(t, second.ID, checks[0].ID)
	assert.Equal(t, first.ID, checks[1].ID)
}

func TestCheckInTemplateEntry(t *testing.T) {
	s, _ := loggedIn(t)
	_, err := s.AddTemplateItem(models.TemplateItem{Title: "Stretch"})
	require.NoError(t, err)
	_, err = s.ApplyTemplate(1)
	require.NoError(t, err)

	check, err := s.CheckIn("stretch", "")
	require.NoError(t, err)
	assert.True(t, check.Template)
	assert.Equal(t, scheduler.TemplateRef("2024-06-10", 0), check.TaskID)

	// Template checks count towards the day but not the per-task rows.
	report, err := s.StatsFor([]int{7})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Windows[0].Total)
	assert.Empty(t, report.Tasks)
}

func TestTemplateEditing(t *testing.T) {
	s, _ := loggedIn(t)

	prefs, err := s.AddTemplateItem(models.TemplateItem{})
	require.NoError(t, err)
	require.Len(t, prefs.DayTemplate, 1)
	assert.Equal(t, models.DefaultTemplateItem(), prefs.DayTemplate[0])

	title := "Stretch"
	window := models.TimeWindow{Enabled: true, Start: "21:00", End: "01:00"}
	prefs, err = s.UpdateTemplateItem(0, TemplatePatch{Title: &title, Window: &window})
	require.NoError(t, err)
	assert.Equal(t, "Stretch", prefs.DayTemplate[0].Title)
	assert.Equal(t, window, prefs.DayTemplate[0].Window)
	assert.Equal(t, "Study", prefs.DayTemplate[0].Category)

	_, err = s.UpdateTemplateItem(3, TemplatePatch{Title: &title})
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = s.RemoveTemplateItem(1)
	assert.ErrorIs(t, err, errors.ErrValidation)
	prefs, err = s.RemoveTemplateItem(0)
	require.NoError(t, err)
	assert.Empty(t, prefs.DayTemplate)
}

func TestApplyEmptyTemplateClearsDays(t *testing.T) {
	s, _ := loggedIn(t)
	_, err := s.AddTemplateItem(models.TemplateItem{Title: "Stretch"})
	require.NoError(t, err)
	_, err = s.ApplyTemplate(7)
	require.NoError(t, err)

	_, err = s.RemoveTemplateItem(0)
	require.NoError(t, err)
	_, err = s.ApplyTemplate(7)
	require.NoError(t, err)

	entries, err := s.Today()
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = s.ApplyTemplate(0)
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestProfilePreferences(t *testing.T) {
	s, _ := loggedIn(t)

	prefs, err := s.Preferences()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), prefs)

	_, err = s.SetMotto("  Onward  ")
	require.NoError(t, err)
	prefs, err = s.SetAvatar("/home/alice/me.png")
	require.NoError(t, err)
	assert.Equal(t, "Onward", prefs.Motto)
	assert.Equal(t, "/home/alice/me.png", prefs.Avatar)
}

func TestImportTakesBackupAndReplacesPresentKeys(t *testing.T) {
	b := &countingBackuper{}
	s, _ := loggedIn(t, WithBackups(b))
	_, err := s.AddTask("Read", "", models.DefaultWindow())
	require.NoError(t, err)

	_, err = s.Import([]byte(`{"tasks": [`))
	assert.ErrorIs(t, err, errors.ErrImportFailed)
	assert.Equal(t, 0, b.calls)

	keys, err := s.Import([]byte(`{"prefs": {"motto": "Imported"}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"prefs"}, keys)
	assert.Equal(t, 1, b.calls)

	tasks, err := s.ListTasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	snap, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, "Imported", snap.Prefs.Motto)
}

func TestUsersAreIsolated(t *testing.T) {
	s, _ := loggedIn(t)
	_, err := s.AddTask("Read", "", models.DefaultWindow())
	require.NoError(t, err)
	require.NoError(t, s.Logout())

	_, err = s.Register("bob", "secret")
	require.NoError(t, err)
	tasks, err := s.ListTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = s.Login("alice", "pw123")
	require.NoError(t, err)
	tasks, err = s.ListTasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
