package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Stats.Windows, []int{7, 30, 90}) {
		t.Errorf("unexpected stats windows %v", cfg.Stats.Windows)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database: /tmp/upbeat-test.json
timezone: UTC
notifications:
  tray: true
stats:
  windows: [14]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database != "/tmp/upbeat-test.json" || cfg.Timezone != "UTC" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !cfg.Notifications.Tray || !cfg.Notifications.Console {
		t.Errorf("tray should be on and console should keep its default, got %+v", cfg.Notifications)
	}
	if !reflect.DeepEqual(cfg.Stats.Windows, []int{14}) {
		t.Errorf("stats windows = %v", cfg.Stats.Windows)
	}
	if !reflect.DeepEqual(cfg.Template.Horizons, []int{7, 30}) {
		t.Errorf("template horizons should keep defaults, got %v", cfg.Template.Horizons)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "database: [unterminated",
		"bad timezone": "timezone: Mars/Olympus_Mons",
		"bad window":   "stats:\n  windows: [0]",
		"bad horizon":  "template:\n  horizons: [-7]",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Timezone = "UTC"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("UPBEAT_TEST_DOTENV=from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("UPBEAT_TEST_DOTENV", "")
	os.Unsetenv("UPBEAT_TEST_DOTENV")

	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if got := os.Getenv("UPBEAT_TEST_DOTENV"); got != "from-file" {
		t.Errorf("UPBEAT_TEST_DOTENV = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/.config/upbeat/upbeat.db"); got != filepath.Join(home, ".config/upbeat/upbeat.db") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("~user/x"); got != "~user/x" {
		t.Errorf("ExpandPath() should leave ~user alone, got %q", got)
	}
}
