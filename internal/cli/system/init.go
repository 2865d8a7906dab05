package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/upbeat/internal/cli"
	"github.com/julianstephens/upbeat/internal/config"
	"github.com/julianstephens/upbeat/internal/constants"
	"github.com/julianstephens/upbeat/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*postgres.Store); ok {
			return fmt.Errorf("--force is not supported for PostgreSQL storage, drop the %s schema instead", constants.AppName)
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to release file locks
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if ctx.SettingsPath != "" {
		path := config.ExpandPath(ctx.SettingsPath)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.Save(path, ctx.Config); err != nil {
				return fmt.Errorf("failed to write settings file: %w", err)
			}
			fmt.Printf("Wrote default settings to: %s\n", path)
		}
	}

	fmt.Printf("Next: create an account with '%s register <username>'\n", constants.AppName)
	return nil
}
