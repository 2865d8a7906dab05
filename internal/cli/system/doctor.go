package system

import (
	"fmt"

	"github.com/julianstephens/upbeat/internal/cli"
	"github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/notifier"
	"github.com/julianstephens/upbeat/internal/utils"
	"github.com/julianstephens/upbeat/internal/validation"
)

type DoctorCmd struct{}

// schemaVersioner is implemented by the SQL stores.
type schemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

type check struct {
	name    string
	run     func(*cli.Context) error
	needsDB bool
	warning bool
}

var diagnostics = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Session", run: checkSession, needsDB: true, warning: true},
	{name: "Data validation", run: checkUserData, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warning: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Tray app", run: checkTray, warning: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range diagnostics {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.Accounts().ListAccounts(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sv, ok := ctx.Store.(schemaVersioner)
	if !ok {
		// JSON store doesn't have a schema
		return nil
	}
	current, latest, err := sv.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkSession(ctx *cli.Context) error {
	if _, err := ctx.Tracker.Current(); err != nil {
		if errors.Is(err, errors.ErrNoSession) {
			return fmt.Errorf("nobody is logged in, user data checks are skipped")
		}
		return err
	}
	return nil
}

// checkUserData validates the logged-in user's collections. Without a
// session there is nothing to check.
func checkUserData(ctx *cli.Context) error {
	acc, err := ctx.Tracker.Current()
	if err != nil {
		if errors.Is(err, errors.ErrNoSession) {
			return nil
		}
		return err
	}
	repo := ctx.Store.ForUser(acc.Username)

	tasks, err := repo.GetTasks()
	if err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, t := range tasks {
		if _, err := validation.ValidateTaskTitle(t.Title); err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
		if err := validation.ValidateWindow(t.Window); err != nil {
			return fmt.Errorf("task %q: %w", t.Title, err)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate task id %s", t.ID)
		}
		seen[t.ID] = true
	}

	checks, err := repo.GetChecks()
	if err != nil {
		return err
	}
	for _, c := range checks {
		if !utils.ValidateDateFormat(c.Date) {
			return fmt.Errorf("check %s has invalid date %q", c.ID, c.Date)
		}
	}

	prefs, err := repo.GetPreferences()
	if err != nil {
		return err
	}
	for i, item := range prefs.DayTemplate {
		if err := validation.ValidateWindow(item.Window); err != nil {
			return fmt.Errorf("template item %d: %w", i+1, err)
		}
	}

	planned, err := repo.GetPlanned()
	if err != nil {
		return err
	}
	for date := range planned {
		if !utils.ValidateDateFormat(date) {
			return fmt.Errorf("planned day has invalid date %q", date)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, ok := ctx.BackupManager()
	if !ok {
		return nil
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'upbeat backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("unknown timezone %q", ctx.Config.Timezone)
	}
	now := ctx.Tracker.Clock().Now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now)
	}
	return nil
}

func checkTray(ctx *cli.Context) error {
	if !ctx.Config.Notifications.Tray {
		return nil
	}
	if _, err := notifier.GetTrayAppConfigDir(); err != nil {
		return err
	}
	return notifier.NewTray().Ping()
}
