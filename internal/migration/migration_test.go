package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/upbeat/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}), sq.Question)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"003_another.sql": "CREATE TABLE test2 (id INTEGER);",
		"001_init.sql":    "CREATE TABLE test1 (id INTEGER);",
		"002_update.sql":  "ALTER TABLE test1 ADD COLUMN name TEXT;",
		"README.md":       "not a migration",
	}), sq.Question)

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}

	wantNames := []string{"init", "update", "another"}
	for i, m := range migrations {
		if m.Version != i+1 || m.Name != wantNames[i] {
			t.Errorf("migration %d: got version %d name %q", i, m.Version, m.Name)
		}
	}
}

func TestReadMigrationFiles_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"no underscore", map[string]string{"001.sql": ""}, "invalid migration filename"},
		{"bad version", map[string]string{"abc_init.sql": ""}, "invalid version number"},
		{"zero version", map[string]string{"000_init.sql": ""}, "must be at least 1"},
		{"duplicate", map[string]string{"001_a.sql": "", "1_b.sql": ""}, "duplicate migration version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), migrationFS(tt.files), sq.Question)
			_, err := runner.ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestApplyMigrationsIncrementally(t *testing.T) {
	db := setupTestDB(t)
	files := map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
	}

	applied, err := NewRunner(db, migrationFS(files), sq.Question).ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied, got %d", applied)
	}

	files["002_posts.sql"] = "CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER);"
	var logs []string
	runner := NewRunner(db, migrationFS(files), sq.Question)
	applied, err = runner.ApplyMigrations(func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("expected only the new migration to apply, got %d", applied)
	}
	if len(logs) == 0 {
		t.Error("expected progress to be logged")
	}

	version, _ := runner.GetCurrentVersion()
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	// Nothing left to do
	applied, err = runner.ApplyMigrations(nil)
	if err != nil || applied != 0 {
		t.Errorf("expected no-op, got %d, %v", applied, err)
	}
}

func TestApplyMigrationsRollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql":   "CREATE TABLE users (id INTEGER PRIMARY KEY);",
		"002_broken.sql": "CREATE TABLE broken (id INTEGER PRIMARY KEY; -- syntax error",
	}), sq.Question)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected an error from the broken migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", applied)
	}

	version, _ := runner.GetCurrentVersion()
	if version != 1 {
		t.Errorf("expected version to stay at 1, got %d", version)
	}
}

func TestValidateVersionRejectsNewerSchema(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER);",
	}), sq.Question)

	if err := runner.SetVersion(9); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error for a schema newer than the application")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("expected ApplyMigrations to refuse a newer schema")
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("fs.Sub failed: %v", err)
	}

	db := setupTestDB(t)
	runner := NewRunner(db, sub, sq.Question)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("embedded migrations failed: %v", err)
	}

	for _, table := range []string{"accounts", "session", "tasks", "checks", "preferences", "planned_days"} {
		var count int
		err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&count)
		if err != nil || count != 1 {
			t.Errorf("table %s missing (count %d, err %v)", table, count, err)
		}
	}
}

func TestEmbeddedPostgresMigrationsParse(t *testing.T) {
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		t.Fatalf("fs.Sub failed: %v", err)
	}

	runner := NewRunner(nil, sub, sq.Dollar)
	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion failed: %v", err)
	}
	if latest < 1 {
		t.Errorf("expected at least one postgres migration, got %d", latest)
	}
}
