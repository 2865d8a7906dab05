package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/upbeat/internal/backup"
	"github.com/julianstephens/upbeat/internal/config"
	"github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/logger"
	"github.com/julianstephens/upbeat/internal/notifier"
	"github.com/julianstephens/upbeat/internal/storage"
	"github.com/julianstephens/upbeat/internal/storage/sqlite"
	"github.com/julianstephens/upbeat/internal/tracker"
	"github.com/julianstephens/upbeat/internal/utils"
)

type Context struct {
	Store        storage.Provider
	Tracker      *tracker.Service
	Config       *config.Config
	SettingsPath string
	Notifier     notifier.Sink
}

// NewContext wires the tracker to store using the settings in cfg.
func NewContext(store storage.Provider, cfg *config.Config, settingsPath string) (*Context, error) {
	clock, err := utils.NewSystemClock(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	ctx := &Context{
		Store:        store,
		Config:       cfg,
		SettingsPath: settingsPath,
		Notifier:     NewNotifier(cfg),
	}
	opts := []tracker.Option{
		tracker.WithNotifier(ctx.Notifier),
		tracker.WithStatsWindows(cfg.Stats.Windows),
	}
	if mgr, ok := ctx.BackupManager(); ok {
		opts = append(opts, tracker.WithBackups(mgr))
	}
	ctx.Tracker = tracker.New(store, clock, opts...)
	return ctx, nil
}

// NewNotifier returns the sinks enabled in cfg.
func NewNotifier(cfg *config.Config) notifier.Sink {
	var sinks notifier.Multi
	if cfg.Notifications.Console {
		sinks = append(sinks, notifier.NewConsole(os.Stdout))
	}
	if cfg.Notifications.Tray {
		sinks = append(sinks, notifier.NewTray())
	}
	if len(sinks) == 0 {
		return notifier.Discard{}
	}
	return sinks
}

// BackupManager returns the database backup manager. Only SQLite stores
// have database files to back up.
func (c *Context) BackupManager() (*backup.Manager, bool) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, false
	}
	return backup.NewManager(c.Store.GetConfigPath()), true
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, ok := c.BackupManager()
	if !ok {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolvePassword returns password, or prompts for it when empty.
func ResolvePassword(password string) (string, error) {
	if password != "" {
		return password, nil
	}
	err := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Run()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", errors.Invalid("password is required")
	}
	return password, nil
}

// RenderMarkdown renders md for the terminal, falling back to the raw text.
func RenderMarkdown(md string) string {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		logger.Debug("Markdown rendering failed", "error", err)
		return md
	}
	return out
}
