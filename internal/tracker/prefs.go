package tracker

import (
	"fmt"
	"strings"

	"github.com/julianstephens/upbeat/internal/constants"
	"github.com/julianstephens/upbeat/internal/logger"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/validation"
)

// TemplatePatch lists the template item fields to change. Nil fields keep
// their current value.
type TemplatePatch struct {
	Title    *string
	Category *string
	Window   *models.TimeWindow
}

func (s *Service) Preferences() (models.Preferences, error) {
	repo, _, err := s.user()
	if err != nil {
		return models.Preferences{}, err
	}
	return repo.GetPreferences()
}

// updatePrefs loads the preferences, applies fn and saves the result. Nothing
// is written when fn fails.
func (s *Service) updatePrefs(action string, fn func(*models.Preferences) error) (models.Preferences, error) {
	repo, username, err := s.user()
	if err != nil {
		return models.Preferences{}, err
	}
	prefs, err := repo.GetPreferences()
	if err != nil {
		return models.Preferences{}, fmt.Errorf("failed to load preferences: %w", err)
	}
	prefs.DayTemplate = models.CloneTemplate(prefs.DayTemplate)
	if err := fn(&prefs); err != nil {
		return models.Preferences{}, err
	}
	if err := repo.SavePreferences(prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("failed to save preferences: %w", err)
	}
	logger.Info("Preferences updated", "user", username, "action", action)
	return prefs, nil
}

func (s *Service) SetMotto(motto string) (models.Preferences, error) {
	return s.updatePrefs("motto", func(p *models.Preferences) error {
		p.Motto = strings.TrimSpace(motto)
		return nil
	})
}

// SetAvatar stores ref verbatim; it may be a file path or a data URL.
func (s *Service) SetAvatar(ref string) (models.Preferences, error) {
	return s.updatePrefs("avatar", func(p *models.Preferences) error {
		p.Avatar = ref
		return nil
	})
}

func (s *Service) SetWeekdays(mask models.Weekdays) (models.Preferences, error) {
	return s.updatePrefs("weekdays", func(p *models.Preferences) error {
		p.RequiredWeekdays = mask
		return nil
	})
}

// AddTemplateItem appends item to the day template. Empty fields take the
// values of models.DefaultTemplateItem.
func (s *Service) AddTemplateItem(item models.TemplateItem) (models.Preferences, error) {
	def := models.DefaultTemplateItem()
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		item.Title = def.Title
	}
	if strings.TrimSpace(item.Category) == "" {
		item.Category = def.Category
	}
	if !item.Window.Enabled && item.Window.Start == "" && item.Window.End == "" {
		item.Window = def.Window
	}
	if err := validation.ValidateWindow(item.Window); err != nil {
		return models.Preferences{}, err
	}
	return s.updatePrefs("template-add", func(p *models.Preferences) error {
		p.DayTemplate = append(p.DayTemplate, item)
		return nil
	})
}

func (s *Service) UpdateTemplateItem(index int, patch TemplatePatch) (models.Preferences, error) {
	return s.updatePrefs("template-edit", func(p *models.Preferences) error {
		if err := validation.ValidateIndex(index, len(p.DayTemplate)); err != nil {
			return err
		}
		item := p.DayTemplate[index]
		if patch.Title != nil {
			title, err := validation.ValidateTaskTitle(*patch.Title)
			if err != nil {
				return err
			}
			item.Title = title
		}
		if patch.Category != nil {
			item.Category = strings.TrimSpace(*patch.Category)
			if item.Category == "" {
				item.Category = constants.CategoryStudy
			}
		}
		if patch.Window != nil {
			if err := validation.ValidateWindow(*patch.Window); err != nil {
				return err
			}
			item.Window = *patch.Window
		}
		p.DayTemplate[index] = item
		return nil
	})
}

func (s *Service) RemoveTemplateItem(index int) (models.Preferences, error) {
	return s.updatePrefs("template-remove", func(p *models.Preferences) error {
		if err := validation.ValidateIndex(index, len(p.DayTemplate)); err != nil {
			return err
		}
		p.DayTemplate = append(p.DayTemplate[:index], p.DayTemplate[index+1:]...)
		return nil
	})
}

// ApplyTemplate freezes the day template onto the required weekdays of the
// next days dates, today included, and returns the dates written.
func (s *Service) ApplyTemplate(days int) ([]string, error) {
	repo, username, err := s.user()
	if err != nil {
		return nil, err
	}
	prefs, err := repo.GetPreferences()
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	planned, err := repo.GetPlanned()
	if err != nil {
		return nil, fmt.Errorf("failed to load planned days: %w", err)
	}

	next, written, err := s.scheduler.ApplyTemplate(prefs, planned, s.clock.Now(), days)
	if err != nil {
		return nil, err
	}
	if err := repo.SavePlanned(next); err != nil {
		return nil, fmt.Errorf("failed to save planned days: %w", err)
	}

	logger.Info("Template applied", "user", username, "days", days, "written", len(written),
		"items", len(prefs.DayTemplate))
	s.toast(TemplateMessage(days))
	return written, nil
}

// TemplateMessage is the confirmation shown after applying the template.
func TemplateMessage(days int) string {
	return fmt.Sprintf("Template applied to the next %d days ✅", days)
}
