package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/upbeat/internal/config"
	"github.com/julianstephens/upbeat/internal/constants"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/notifier"
	"github.com/julianstephens/upbeat/internal/scheduler"
	"github.com/julianstephens/upbeat/internal/tracker"
	"github.com/julianstephens/upbeat/internal/tui/components/report"
	"github.com/julianstephens/upbeat/internal/tui/components/settings"
	"github.com/julianstephens/upbeat/internal/tui/components/tasklist"
	"github.com/julianstephens/upbeat/internal/utils"
)

type LoginFormModel struct {
	Username string
	Password string
	Register bool
}

type TaskFormModel struct {
	Title    string
	Category string
	Timed    bool
	Start    string
	End      string
}

type MakeUpFormModel struct {
	Date string
}

type PrefsFormModel struct {
	Motto    string
	Weekdays []time.Weekday
	Horizon  int
}

// pendingRemoval is what the confirmation dialog will remove: a task by
// id, or a day template item by index when TaskID is empty.
type pendingRemoval struct {
	TaskID    string
	ItemIndex int
	Title     string
}

type Model struct {
	svc           *tracker.Service
	cfg           *config.Config
	toasts        *toastSink
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	taskList      tasklist.Model
	reportModel   report.Model
	settingsModel settings.Model
	form          *huh.Form
	loginForm     *LoginFormModel
	taskForm      *TaskFormModel
	makeUpForm    *MakeUpFormModel
	prefsForm     *PrefsFormModel
	makeUpEntry   scheduler.Entry
	removal       pendingRemoval
	username      string
	motto         string
	toast         string
	toastSeq      int
	formError     string // Error message to display for form operations
	quitting      bool
	width         int
	height        int
}

// NewModel builds the interface for svc. Toasts raised by the tracker are
// shown in the status line and, when enabled in cfg, forwarded to the tray.
func NewModel(svc *tracker.Service, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	sink := &toastSink{}
	var out notifier.Sink = sink
	if cfg.Notifications.Tray {
		out = notifier.Multi{sink, notifier.NewTray()}
	}

	m := Model{
		svc:           svc.Notifying(out),
		cfg:           cfg,
		toasts:        sink,
		state:         constants.StateTasks,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		taskList:      tasklist.New(0, 0),
		reportModel:   report.New(0, 0),
		settingsModel: settings.New(0, 0),
	}

	if acc, err := m.svc.Current(); err == nil {
		m.username = acc.Username
		m.refresh()
	} else {
		m.openLoginForm()
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateTasks:
		tk := tasklist.DefaultKeyMap()
		keys = append(keys, tk.Add, tk.Check, tk.MakeUp, tk.Delete)
	case constants.StateSettings:
		sk := m.settingsModel.Keys()
		keys = append(keys, sk.Motto, sk.Weekdays, sk.Add, sk.Remove, sk.Apply)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateTasks:
		tk := tasklist.DefaultKeyMap()
		actions = []key.Binding{tk.Add, tk.Check, tk.MakeUp, tk.Delete}
	case constants.StateSettings:
		sk := m.settingsModel.Keys()
		actions = []key.Binding{sk.Motto, sk.Weekdays, sk.Add, sk.Remove, sk.Apply}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// refresh reloads every view from the tracker.
func (m *Model) refresh() {
	today := utils.Today(m.svc.Clock())
	m.formError = ""

	entries, err := m.svc.Today()
	if err != nil {
		m.formError = err.Error()
		return
	}
	checks, err := m.svc.Checks()
	if err != nil {
		m.formError = err.Error()
		return
	}
	m.taskList.SetEntries(entries, doneOn(checks, today))

	if r, err := m.svc.Stats(); err == nil {
		m.reportModel.SetReport(r)
	}
	if prefs, err := m.svc.Preferences(); err == nil {
		m.settingsModel.SetPreferences(prefs)
		m.motto = prefs.DisplayMotto()
	}
}

// doneOn returns the refs checked in on date.
func doneOn(checks []models.Check, date string) map[string]bool {
	done := make(map[string]bool)
	for _, c := range checks {
		if c.Date == date {
			done[c.TaskID] = true
		}
	}
	return done
}

// contentHeight is the space left for the active tab below the tab bar,
// the status line and the help line.
func (m Model) contentHeight() int {
	return max(m.height-6, 0)
}
