// Package config loads the optional YAML settings file and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/upbeat/internal/constants"
	"github.com/julianstephens/upbeat/internal/utils"
)

type NotificationsConfig struct {
	Console bool `yaml:"console"` // Print a toast line after CLI mutations
	Tray    bool `yaml:"tray"`    // Forward toasts to the tray app
}

type StatsConfig struct {
	Windows []int `yaml:"windows"` // Trailing day counts on the stats views
}

type TemplateConfig struct {
	Horizons []int `yaml:"horizons"` // Quick "apply template" day counts
}

type Config struct {
	Database      string              `yaml:"database"` // SQLite path, *.json path or PostgreSQL connection string
	Timezone      string              `yaml:"timezone"` // IANA name or "Local"
	Notifications NotificationsConfig `yaml:"notifications"`
	Stats         StatsConfig         `yaml:"stats"`
	Template      TemplateConfig      `yaml:"template"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Database: constants.DefaultConfigPath,
		Timezone: constants.DefaultTimezone,
		Notifications: NotificationsConfig{
			Console: true,
			Tray:    false,
		},
		Stats:    StatsConfig{Windows: append([]int{}, constants.DefaultStatsWindows...)},
		Template: TemplateConfig{Horizons: append([]int{}, constants.DefaultTemplateHorizons...)},
	}
}

// Load reads filename over the defaults. A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ExpandPath(filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory.
func Save(filename string, cfg *Config) error {
	path := ExpandPath(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	for _, d := range c.Stats.Windows {
		if d <= 0 {
			return fmt.Errorf("stats window must be positive, got %d", d)
		}
	}
	for _, d := range c.Template.Horizons {
		if d <= 0 {
			return fmt.Errorf("template horizon must be positive, got %d", d)
		}
	}
	return nil
}

// LoadEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnv(filenames ...string) error {
	for _, f := range filenames {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// Dir is the directory holding the config file and logs.
func Dir(filename string) string {
	return filepath.Dir(ExpandPath(filename))
}
