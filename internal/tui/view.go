package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/upbeat/internal/constants"
)

var tabTitles = map[constants.SessionState]string{
	constants.StateTasks:    "Tasks",
	constants.StateStats:    "Stats",
	constants.StateSettings: "Settings",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateTasks:
		content = docStyle.Render(m.taskList.View())
	case constants.StateStats:
		content = docStyle.Render(m.reportModel.View())
	case constants.StateSettings:
		content = docStyle.Render(m.settingsModel.View())
	case constants.StateConfirmRemove:
		content = m.viewConfirmRemove()
	default:
		if m.form != nil {
			content = docStyle.Render(m.form.View())
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.state
	if _, ok := tabTitles[active]; !ok {
		active = m.previousState
	}
	for _, s := range constants.Tabs {
		if s == active {
			tabs = append(tabs, activeTabStyle.Render(tabTitles[s]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tabTitles[s]))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.username != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", mottoStyle.Render(fmt.Sprintf("%s · %s", m.username, m.motto)))
	}
	return header
}

func (m Model) viewStatus() string {
	switch {
	case m.formError != "":
		return errorStyle.Render("Error: " + m.formError)
	case m.toast != "":
		return toastStyle.Render(m.toast)
	}
	return ""
}

func (m Model) viewConfirmRemove() string {
	prompt := fmt.Sprintf("Remove task %q? Its check-ins are kept.", m.removal.Title)
	if m.removal.TaskID == "" {
		prompt = fmt.Sprintf("Remove %q from the day template?", m.removal.Title)
	}
	return lipgloss.Place(m.width, m.contentHeight(),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(prompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
