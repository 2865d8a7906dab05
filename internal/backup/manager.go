package backup

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/upbeat/internal/constants"
	"github.com/julianstephens/upbeat/internal/logger"
)

const stampFormat = "20060102-150405"

// Info describes one database backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, rotates and restores copies of a SQLite database file.
// Backups live in a "backups" directory next to the database.
type Manager struct {
	dbPath string
	dir    string
	now    func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		now:    time.Now,
	}
}

// GetBackupDir returns the backup directory.
func (m *Manager) GetBackupDir() string {
	return m.dir
}

// CreateBackup copies the database into the backup directory and prunes the
// oldest backups beyond constants.MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Backup rotation failed", "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("database not found at %s: %w", m.dbPath, err)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path := m.nextPath()
	if err := vacuumInto(m.dbPath, path); err != nil {
		logger.Debug("VACUUM INTO failed, copying file instead", "error", err)
		_ = os.Remove(path)
		if err := copyFile(m.dbPath, path); err != nil {
			return "", fmt.Errorf("failed to back up database: %w", err)
		}
	}

	logger.Info("Database backup created", "path", path)
	return path, nil
}

// nextPath returns an unused backup filename for the current second. A numeric
// suffix separates backups taken within the same second.
func (m *Manager) nextPath() string {
	stamp := m.now().Format(stampFormat)
	path := filepath.Join(m.dir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, i, constants.BackupFileSuffix))
	}
}

func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.Exec("VACUUM INTO ?", dst)
	return err
}

// ListBackups returns all backups, newest first. A missing backup directory
// yields an empty list.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}
		ts, ok := parseStamp(name)
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, name),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func parseStamp(name string) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
	if len(stamp) < len(stampFormat) {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(stampFormat, stamp[:len(stampFormat)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) <= constants.MaxBackups {
		return nil
	}
	for _, b := range backups[constants.MaxBackups:] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
		logger.Debug("Removed old backup", "path", b.Path)
	}
	return nil
}

// RestoreBackup replaces the database with backupPath. The current database,
// if any, is backed up first. The swap goes through a temporary file so a
// failed restore leaves the original in place.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup file not found: %w", err)
	}
	if err := verify(backupPath); err != nil {
		return fmt.Errorf("backup file is not a valid database: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		safety, err := m.create()
		if err != nil {
			return fmt.Errorf("failed to back up current database before restore: %w", err)
		}
		logger.Info("Saved current database before restore", "path", safety)
	}

	tmp := m.dbPath + ".restore"
	if err := copyFile(backupPath, tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to copy backup: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace database: %w", err)
	}

	logger.Info("Database restored", "from", backupPath)
	return nil
}

func verify(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
