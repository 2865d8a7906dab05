package tracker

import (
	"fmt"

	"github.com/julianstephens/upbeat/internal/backup"
	"github.com/julianstephens/upbeat/internal/logger"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/stats"
)

// Stats builds the statistics report over the configured windows.
func (s *Service) Stats() (stats.Report, error) {
	return s.StatsFor(s.windows)
}

// StatsFor builds the statistics report over the given trailing windows.
func (s *Service) StatsFor(windows []int) (stats.Report, error) {
	repo, _, err := s.user()
	if err != nil {
		return stats.Report{}, err
	}
	checks, err := repo.GetChecks()
	if err != nil {
		return stats.Report{}, fmt.Errorf("failed to load checks: %w", err)
	}
	tasks, err := repo.GetTasks()
	if err != nil {
		return stats.Report{}, fmt.Errorf("failed to load tasks: %w", err)
	}
	return stats.BuildReport(checks, tasks, s.clock.Now(), windows), nil
}

// Export returns a snapshot of the logged-in user's data.
func (s *Service) Export() (models.Snapshot, error) {
	repo, username, err := s.user()
	if err != nil {
		return models.Snapshot{}, err
	}
	snap, err := backup.Export(repo)
	if err != nil {
		return models.Snapshot{}, err
	}
	logger.Info("Data exported", "user", username, "tasks", len(snap.Tasks), "checks", len(snap.Checks))
	return snap, nil
}

// Import parses data as a backup document and replaces each collection it
// carries. Malformed documents change nothing. The imported keys are
// returned.
func (s *Service) Import(data []byte) ([]string, error) {
	repo, username, err := s.user()
	if err != nil {
		return nil, err
	}
	imp, err := backup.Parse(data)
	if err != nil {
		logger.Warn("Import rejected", "user", username, "error", err)
		return nil, err
	}

	if s.backups != nil {
		if path, err := s.backups.CreateBackup(); err != nil {
			logger.Warn("Automatic backup failed", "error", err)
		} else {
			logger.Debug("Automatic backup before import", "path", path)
		}
	}

	if err := imp.Apply(repo); err != nil {
		return nil, err
	}
	keys := imp.Keys()
	logger.Info("Data imported", "user", username, "keys", keys)
	return keys, nil
}
