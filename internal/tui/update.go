package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/upbeat/internal/constants"
	"github.com/julianstephens/upbeat/internal/tui/components/settings"
	"github.com/julianstephens/upbeat/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h := m.contentHeight()
		m.taskList.SetSize(msg.Width-4, h)
		m.reportModel.SetSize(msg.Width-4, h)
		m.settingsModel.SetSize(msg.Width-4, h)
		return m, nil

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil
	}

	if m.form != nil && m.isFormState() {
		return m.updateForm(msg)
	}
	if m.state == constants.StateConfirmRemove {
		return m.updateConfirmRemove(msg)
	}

	if handled, cmd := m.handleComponentMsg(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = m.nextTab(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = m.nextTab(-1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case constants.StateStats:
		m.reportModel, cmd = m.reportModel.Update(msg)
	case constants.StateSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) nextTab(step int) constants.SessionState {
	i := slices.Index(constants.Tabs, m.state)
	if i < 0 {
		return constants.StateTasks
	}
	n := len(constants.Tabs)
	return constants.Tabs[(i+step+n)%n]
}

func (m Model) isFormState() bool {
	switch m.state {
	case constants.StateLogin, constants.StateAddTask, constants.StateMakeUp,
		constants.StateEditMotto, constants.StateEditWeekdays,
		constants.StateAddTemplateItem, constants.StateApplyTemplate:
		return true
	}
	return false
}

// updateForm drives the active huh form. A failed submission keeps the form
// open with the error shown so the user can correct it or cancel with esc.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.Type == tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case msg.Type == tea.KeyEsc && m.state != constants.StateLogin:
			m.closeForm()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			m.formError = err.Error()
			if m.state == constants.StateLogin {
				m.openLoginForm()
				m.formError = err.Error()
				return m, m.form.Init()
			}
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.closeForm()
		m.refresh()
		return m, m.showToast()
	case huh.StateAborted:
		if m.state == constants.StateLogin {
			m.quitting = true
			return m, tea.Quit
		}
		m.closeForm()
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.state = m.previousState
	m.formError = ""
}

// handleComponentMsg reacts to the requests the tab components emit.
func (m *Model) handleComponentMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		m.openTaskForm()
		return true, m.form.Init()
	case tasklist.CheckInMsg:
		if _, err := m.svc.CheckInEntry(msg.Entry, ""); err != nil {
			m.formError = err.Error()
			return true, nil
		}
		m.refresh()
		return true, m.showToast()
	case tasklist.MakeUpMsg:
		m.makeUpEntry = msg.Entry
		m.openMakeUpForm()
		return true, m.form.Init()
	case tasklist.DeleteTaskMsg:
		m.removal = pendingRemoval{TaskID: msg.ID, ItemIndex: -1, Title: msg.Title}
		m.previousState = m.state
		m.state = constants.StateConfirmRemove
		return true, nil

	case settings.EditMottoMsg:
		m.openMottoForm()
		return true, m.form.Init()
	case settings.EditWeekdaysMsg:
		m.openWeekdaysForm()
		return true, m.form.Init()
	case settings.AddItemMsg:
		m.openTemplateItemForm()
		return true, m.form.Init()
	case settings.RemoveItemMsg:
		m.removal = pendingRemoval{ItemIndex: msg.Index, Title: msg.Title}
		m.previousState = m.state
		m.state = constants.StateConfirmRemove
		return true, nil
	case settings.ApplyTemplateMsg:
		m.openApplyForm()
		return true, m.form.Init()
	}
	return false, nil
}

func (m Model) updateConfirmRemove(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		var err error
		if m.removal.TaskID != "" {
			_, err = m.svc.RemoveTask(m.removal.TaskID)
		} else {
			_, err = m.svc.RemoveTemplateItem(m.removal.ItemIndex)
		}
		m.state = m.previousState
		m.removal = pendingRemoval{}
		if err != nil {
			m.formError = err.Error()
			return m, nil
		}
		m.formError = ""
		m.refresh()
		return m, m.showToast()
	case "n", "N", "esc", "q":
		m.state = m.previousState
		m.removal = pendingRemoval{}
	}
	return m, nil
}
