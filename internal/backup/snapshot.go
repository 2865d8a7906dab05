package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/storage"
)

// Export reads every collection of one user into a snapshot.
func Export(repo storage.UserRepository) (models.Snapshot, error) {
	prefs, err := repo.GetPreferences()
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read preferences: %w", err)
	}
	tasks, err := repo.GetTasks()
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read tasks: %w", err)
	}
	checks, err := repo.GetChecks()
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read checks: %w", err)
	}
	planned, err := repo.GetPlanned()
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read planned days: %w", err)
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	if checks == nil {
		checks = []models.Check{}
	}
	if planned == nil {
		planned = models.PlannedDays{}
	}
	return models.Snapshot{Prefs: prefs, Tasks: tasks, Checks: checks, Planned: planned}, nil
}

// Write encodes snap as indented JSON.
func Write(w io.Writer, snap models.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(snap)
}

// Import is a parsed backup document. Nil fields were absent from the
// document and are left untouched by Apply.
type Import struct {
	Prefs   *models.Preferences
	Tasks   *[]models.Task
	Checks  *[]models.Check
	Planned *models.PlannedDays
}

// Parse decodes a backup document in full before anything is written. Any
// decoding problem is reported as errors.ErrImportFailed. A key holding null
// counts as absent.
func Parse(data []byte) (Import, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Import{}, fmt.Errorf("%w: %v", errors.ErrImportFailed, err)
	}

	var imp Import
	if msg, ok := present(raw, "prefs"); ok {
		prefs := models.DefaultPreferences()
		if err := json.Unmarshal(msg, &prefs); err != nil {
			return Import{}, fmt.Errorf("%w: prefs: %v", errors.ErrImportFailed, err)
		}
		if prefs.DayTemplate == nil {
			prefs.DayTemplate = []models.TemplateItem{}
		}
		imp.Prefs = &prefs
	}
	if msg, ok := present(raw, "tasks"); ok {
		var tasks []models.Task
		if err := json.Unmarshal(msg, &tasks); err != nil {
			return Import{}, fmt.Errorf("%w: tasks: %v", errors.ErrImportFailed, err)
		}
		imp.Tasks = &tasks
	}
	if msg, ok := present(raw, "checks"); ok {
		var checks []models.Check
		if err := json.Unmarshal(msg, &checks); err != nil {
			return Import{}, fmt.Errorf("%w: checks: %v", errors.ErrImportFailed, err)
		}
		imp.Checks = &checks
	}
	if msg, ok := present(raw, "planned"); ok {
		var planned models.PlannedDays
		if err := json.Unmarshal(msg, &planned); err != nil {
			return Import{}, fmt.Errorf("%w: planned: %v", errors.ErrImportFailed, err)
		}
		for date, items := range planned {
			if items == nil {
				planned[date] = []models.TemplateItem{}
			}
		}
		imp.Planned = &planned
	}
	return imp, nil
}

func present(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	msg, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return nil, false
	}
	return msg, true
}

// Keys lists the top-level keys the document carried.
func (imp Import) Keys() []string {
	var keys []string
	if imp.Prefs != nil {
		keys = append(keys, "prefs")
	}
	if imp.Tasks != nil {
		keys = append(keys, "tasks")
	}
	if imp.Checks != nil {
		keys = append(keys, "checks")
	}
	if imp.Planned != nil {
		keys = append(keys, "planned")
	}
	return keys
}

// Apply replaces each present collection in repo.
func (imp Import) Apply(repo storage.UserRepository) error {
	if imp.Prefs != nil {
		if err := repo.SavePreferences(*imp.Prefs); err != nil {
			return fmt.Errorf("failed to import preferences: %w", err)
		}
	}
	if imp.Tasks != nil {
		if err := repo.SaveTasks(*imp.Tasks); err != nil {
			return fmt.Errorf("failed to import tasks: %w", err)
		}
	}
	if imp.Checks != nil {
		if err := repo.SaveChecks(*imp.Checks); err != nil {
			return fmt.Errorf("failed to import checks: %w", err)
		}
	}
	if imp.Planned != nil {
		if err := repo.SavePlanned(*imp.Planned); err != nil {
			return fmt.Errorf("failed to import planned days: %w", err)
		}
	}
	return nil
}
