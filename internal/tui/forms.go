package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/upbeat/internal/constants"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/utils"
	"github.com/julianstephens/upbeat/internal/validation"
)

func (m *Model) openForm(state constants.SessionState, form *huh.Form) {
	if m.state != state {
		m.previousState = m.state
	}
	m.state = state
	m.form = form
	m.formError = ""
}

func (m *Model) openLoginForm() {
	m.loginForm = &LoginFormModel{}
	fm := m.loginForm
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&fm.Username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(required("password")),
			huh.NewConfirm().
				Title("Create a new account?").
				Affirmative("Register").
				Negative("Log in").
				Value(&fm.Register),
		),
	)
	m.openForm(constants.StateLogin, form)
	m.previousState = constants.StateTasks
}

// newTaskForm is shared by the add-task and add-template-item dialogs.
// Template items may leave the title blank to get the default one.
func newTaskForm(fm *TaskFormModel, titleRequired bool) *huh.Form {
	title := huh.NewInput().
		Title("Title").
		Value(&fm.Title)
	if titleRequired {
		title = title.Validate(func(s string) error {
			_, err := validation.ValidateTaskTitle(s)
			return err
		})
	} else {
		title = title.Placeholder(constants.DefaultTemplateTitle)
	}

	categories := make([]huh.Option[string], len(constants.Categories))
	for i, c := range constants.Categories {
		categories[i] = huh.NewOption(c, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			title,
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewConfirm().
				Title("Restrict to a time window?").
				Value(&fm.Timed),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Window start (HH:MM)").
				Value(&fm.Start).
				Validate(timeOfDay),
			huh.NewInput().
				Title("Window end (HH:MM)").
				Description("An end before the start wraps past midnight").
				Value(&fm.End).
				Validate(timeOfDay),
		).WithHideFunc(func() bool { return !fm.Timed }),
	)
}

func (m *Model) openTaskForm() {
	m.taskForm = &TaskFormModel{
		Category: constants.CategoryStudy,
		Start:    constants.DefaultWindowStart,
		End:      constants.DefaultWindowEnd,
	}
	m.openForm(constants.StateAddTask, newTaskForm(m.taskForm, true))
}

func (m *Model) openTemplateItemForm() {
	m.taskForm = &TaskFormModel{
		Category: constants.CategoryStudy,
		Start:    constants.DefaultWindowStart,
		End:      constants.DefaultWindowEnd,
	}
	m.openForm(constants.StateAddTemplateItem, newTaskForm(m.taskForm, false))
}

// openMakeUpForm offers the last days, today included, as check-in dates.
func (m *Model) openMakeUpForm() {
	m.makeUpForm = &MakeUpFormModel{}
	now := m.svc.Clock().Now()
	dates := utils.DaysBack(now, constants.MakeUpLookbackDays)
	slices.Reverse(dates)

	opts := make([]huh.Option[string], len(dates))
	for i, d := range dates {
		label := d
		if i == 0 {
			label += " (today)"
		} else if t, err := utils.ParseDateInLocation(d, now.Location()); err == nil {
			label += " (" + t.Weekday().String()[:3] + ")"
		}
		opts[i] = huh.NewOption(label, d)
	}
	if len(dates) > 1 {
		m.makeUpForm.Date = dates[1]
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Make up %q for", m.makeUpEntry.Title())).
				Options(opts...).
				Value(&m.makeUpForm.Date),
		),
	)
	m.openForm(constants.StateMakeUp, form)
}

func (m *Model) openMottoForm() {
	prefs, _ := m.svc.Preferences()
	m.prefsForm = &PrefsFormModel{Motto: prefs.Motto}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Motto").
				Placeholder(constants.DefaultMotto).
				Value(&m.prefsForm.Motto),
		),
	)
	m.openForm(constants.StateEditMotto, form)
}

func (m *Model) openWeekdaysForm() {
	prefs, _ := m.svc.Preferences()
	m.prefsForm = &PrefsFormModel{}
	opts := make([]huh.Option[time.Weekday], 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		opts[d] = huh.NewOption(d.String(), d).Selected(prefs.RequiredWeekdays.Has(d))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[time.Weekday]().
				Title("Required weekdays").
				Description("The day template is applied to these days only").
				Options(opts...).
				Value(&m.prefsForm.Weekdays),
		),
	)
	m.openForm(constants.StateEditWeekdays, form)
}

func (m *Model) openApplyForm() {
	horizons := m.cfg.Template.Horizons
	if len(horizons) == 0 {
		horizons = constants.DefaultTemplateHorizons
	}
	m.prefsForm = &PrefsFormModel{Horizon: horizons[0]}
	opts := make([]huh.Option[int], len(horizons))
	for i, h := range horizons {
		opts[i] = huh.NewOption(fmt.Sprintf("Next %d days", h), h)
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Apply the day template to").
				Options(opts...).
				Value(&m.prefsForm.Horizon),
		),
	)
	m.openForm(constants.StateApplyTemplate, form)
}

// submitForm runs the action behind the completed form of the current state.
func (m *Model) submitForm() error {
	switch m.state {
	case constants.StateLogin:
		fm := m.loginForm
		var (
			acc models.Account
			err error
		)
		if fm.Register {
			acc, err = m.svc.Register(fm.Username, fm.Password)
		} else {
			acc, err = m.svc.Login(fm.Username, fm.Password)
		}
		if err != nil {
			return err
		}
		m.username = acc.Username
		return nil

	case constants.StateAddTask:
		window, err := m.taskForm.window()
		if err != nil {
			return err
		}
		_, err = m.svc.AddTask(m.taskForm.Title, m.taskForm.Category, window)
		return err

	case constants.StateAddTemplateItem:
		window, err := m.taskForm.window()
		if err != nil {
			return err
		}
		_, err = m.svc.AddTemplateItem(models.TemplateItem{
			Title:    strings.TrimSpace(m.taskForm.Title),
			Category: m.taskForm.Category,
			Window:   window,
		})
		return err

	case constants.StateMakeUp:
		_, err := m.svc.CheckInEntry(m.makeUpEntry, m.makeUpForm.Date)
		return err

	case constants.StateEditMotto:
		_, err := m.svc.SetMotto(m.prefsForm.Motto)
		return err

	case constants.StateEditWeekdays:
		_, err := m.svc.SetWeekdays(models.WeekdaysFrom(m.prefsForm.Weekdays))
		return err

	case constants.StateApplyTemplate:
		_, err := m.svc.ApplyTemplate(m.prefsForm.Horizon)
		return err
	}
	return nil
}

func (fm *TaskFormModel) window() (models.TimeWindow, error) {
	if !fm.Timed {
		return models.DefaultWindow(), nil
	}
	w := models.TimeWindow{Enabled: true, Start: strings.TrimSpace(fm.Start), End: strings.TrimSpace(fm.End)}
	return w, validation.ValidateWindow(w)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func timeOfDay(s string) error {
	if !utils.ValidateTimeFormat(strings.TrimSpace(s)) {
		return errors.New("expected HH:MM")
	}
	return nil
}
