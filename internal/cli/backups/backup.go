package backups

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/upbeat/internal/backup"
	"github.com/julianstephens/upbeat/internal/cli"
	"github.com/julianstephens/upbeat/internal/constants"
	"github.com/julianstephens/upbeat/internal/logger"
)

var errNoDatabaseFile = errors.New("database backups are only available for SQLite storage, use 'upbeat backup export' instead")

type BackupExportCmd struct {
	Out string `short:"o" help:"Write the export to this file instead of stdout." type:"path"`
}

func (c *BackupExportCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Tracker.Export()
	if err != nil {
		return err
	}
	if c.Out == "" {
		return backup.Write(os.Stdout, snap)
	}

	f, err := os.OpenFile(c.Out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := backup.Write(f, snap); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Exported %d tasks and %d check-ins to %s\n", len(snap.Tasks), len(snap.Checks), c.Out)
	return nil
}

type BackupImportCmd struct {
	File string `arg:"" help:"Export file to import, or - for stdin."`
}

func (c *BackupImportCmd) Run(ctx *cli.Context) error {
	var (
		data []byte
		err  error
	)
	if c.File == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	keys, err := ctx.Tracker.Import(data)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}
	fmt.Printf("✓ Imported %s\n", strings.Join(keys, ", "))
	return nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, ok := ctx.BackupManager()
	if !ok {
		return errNoDatabaseFile
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, ok := ctx.BackupManager()
	if !ok {
		return errNoDatabaseFile
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		fmt.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, ok := ctx.BackupManager()
	if !ok {
		return errNoDatabaseFile
	}

	// Bare filenames resolve against the backup directory first
	backupPath := c.BackupFile
	if !filepath.IsAbs(backupPath) {
		candidate := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
		if _, err := os.Stat(candidate); err == nil {
			backupPath = candidate
		}
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	if !c.Yes {
		fmt.Println("⚠️  WARNING: This will replace your current database with the backup.")
		fmt.Println("A backup of your current database will be created before restoring.")
		fmt.Printf("\nRestore from: %s\n", filepath.Base(backupPath))
		fmt.Print("Continue? [y/N]: ")

		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close database before restore", "error", err)
	}
	if err := mgr.RestoreBackup(backupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Database restored successfully!")
	fmt.Printf("Restart any running %s processes to use the restored database.\n", constants.AppName)
	return nil
}
