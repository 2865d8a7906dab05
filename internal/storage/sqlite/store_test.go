package sqlite

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	apperrors "github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

var _ storage.Provider = (*Store)(nil)

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading an uninitialized store")
	}
}

func TestInitIsRepeatable(t *testing.T) {
	store := setupTestStore(t)
	path := store.GetConfigPath()
	store.Close()

	again := NewStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	again.Close()

	loaded := NewStore(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	loaded.Close()
}

func TestAccountsAndSession(t *testing.T) {
	store := setupTestStore(t)
	accounts := store.Accounts()

	acc := models.Account{Username: "alice", PassHash: "hash", CreatedAt: "2024-06-10T09:00:00Z"}
	if err := accounts.AddAccount(acc); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}
	if err := accounts.AddAccount(acc); !errors.Is(err, apperrors.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}

	got, err := accounts.GetAccount("alice")
	if err != nil || got != acc {
		t.Errorf("GetAccount() = %+v, %v", got, err)
	}
	if _, err := accounts.GetAccount("bob"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	list, err := accounts.ListAccounts()
	if err != nil || len(list) != 1 {
		t.Errorf("ListAccounts() = %+v, %v", list, err)
	}

	if s, _ := accounts.GetSession(); s != "" {
		t.Errorf("fresh store should have no session, got %q", s)
	}
	if err := accounts.SetSession("alice"); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}
	if err := accounts.SetSession("alice"); err != nil {
		t.Fatalf("SetSession twice failed: %v", err)
	}
	if s, _ := accounts.GetSession(); s != "alice" {
		t.Errorf("GetSession() = %q", s)
	}
	if err := accounts.ClearSession(); err != nil {
		t.Fatalf("ClearSession failed: %v", err)
	}
	if s, _ := accounts.GetSession(); s != "" {
		t.Errorf("session should be cleared, got %q", s)
	}
}

func TestUserCollectionsRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	alice := store.ForUser("alice")

	tasks := []models.Task{
		{ID: "t2", Title: "Stretch", Category: "Fitness", Window: models.TimeWindow{Enabled: true, Start: "07:00", End: "07:30"}},
		{ID: "t1", Title: "Read", Category: "Study", Window: models.DefaultWindow()},
	}
	checks := []models.Check{
		{ID: "c2", Date: "2024-06-10", TaskID: "template:2024-06-10:0", Template: true, InTime: true},
		{ID: "c1", Date: "2024-06-09", TaskID: "t1", InTime: true, MakeUp: true},
	}
	planned := models.PlannedDays{
		"2024-06-10": {{Title: "Journal", Category: "Life", Window: models.DefaultWindow()}},
		"2024-06-11": {},
	}
	prefs := models.DefaultPreferences()
	prefs.Motto = "One step"
	prefs.Avatar = "/tmp/me.png"
	prefs.RequiredWeekdays = models.Weekdays{false, true, true, true, true, true, false}
	prefs.DayTemplate = []models.TemplateItem{{Title: "Journal", Category: "Life"}}

	if err := alice.SaveTasks(tasks); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}
	if err := alice.SaveChecks(checks); err != nil {
		t.Fatalf("SaveChecks failed: %v", err)
	}
	if err := alice.SavePlanned(planned); err != nil {
		t.Fatalf("SavePlanned failed: %v", err)
	}
	if err := alice.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	// Saving again replaces rather than appends
	if err := alice.SaveTasks(tasks); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}

	gotTasks, err := alice.GetTasks()
	if err != nil || !reflect.DeepEqual(gotTasks, tasks) {
		t.Errorf("GetTasks() = %+v, %v", gotTasks, err)
	}
	gotChecks, err := alice.GetChecks()
	if err != nil || !reflect.DeepEqual(gotChecks, checks) {
		t.Errorf("GetChecks() = %+v, %v", gotChecks, err)
	}
	gotPlanned, err := alice.GetPlanned()
	if err != nil || !reflect.DeepEqual(gotPlanned, planned) {
		t.Errorf("GetPlanned() = %#v, %v", gotPlanned, err)
	}
	gotPrefs, err := alice.GetPreferences()
	if err != nil || !reflect.DeepEqual(gotPrefs, prefs) {
		t.Errorf("GetPreferences() = %+v, %v", gotPrefs, err)
	}

	// Namespaces are isolated
	bobTasks, err := store.ForUser("bob").GetTasks()
	if err != nil || len(bobTasks) != 0 {
		t.Errorf("bob's tasks = %+v, %v", bobTasks, err)
	}
	bobPrefs, err := store.ForUser("bob").GetPreferences()
	if err != nil || !reflect.DeepEqual(bobPrefs, models.DefaultPreferences()) {
		t.Errorf("bob's prefs = %+v, %v", bobPrefs, err)
	}
}

func TestDuplicateTaskIDsAreStored(t *testing.T) {
	store := setupTestStore(t)
	tasks := []models.Task{{ID: "same", Title: "A"}, {ID: "same", Title: "B"}}

	if err := store.ForUser("alice").SaveTasks(tasks); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}
	got, _ := store.ForUser("alice").GetTasks()
	if len(got) != 2 {
		t.Errorf("expected both tasks back, got %+v", got)
	}
}
