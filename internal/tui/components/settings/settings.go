package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/upbeat/internal/models"
)

type EditMottoMsg struct{}

type EditWeekdaysMsg struct{}

type AddItemMsg struct{}

type RemoveItemMsg struct {
	Index int
	Title string
}

type ApplyTemplateMsg struct{}

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Motto    key.Binding
	Weekdays key.Binding
	Add      key.Binding
	Remove   key.Binding
	Apply    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Motto:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "motto")),
		Weekdays: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weekdays")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		Remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove item")),
		Apply:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "apply template")),
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(20)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

type Model struct {
	prefs  models.Preferences
	cursor int
	keys   KeyMap
	width  int
	height int
}

func New(width, height int) Model {
	return Model{keys: DefaultKeyMap(), width: width, height: height}
}

func (m *Model) SetPreferences(prefs models.Preferences) {
	m.prefs = prefs
	if m.cursor >= len(prefs.DayTemplate) {
		m.cursor = max(len(prefs.DayTemplate)-1, 0)
	}
}

func (m Model) Cursor() int { return m.cursor }

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	items := m.prefs.DayTemplate
	switch {
	case key.Matches(msgKey, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msgKey, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msgKey, m.keys.Motto):
		return m, func() tea.Msg { return EditMottoMsg{} }
	case key.Matches(msgKey, m.keys.Weekdays):
		return m, func() tea.Msg { return EditWeekdaysMsg{} }
	case key.Matches(msgKey, m.keys.Add):
		return m, func() tea.Msg { return AddItemMsg{} }
	case key.Matches(msgKey, m.keys.Remove):
		if m.cursor < len(items) {
			idx, title := m.cursor, items[m.cursor].Title
			return m, func() tea.Msg { return RemoveItemMsg{Index: idx, Title: title} }
		}
	case key.Matches(msgKey, m.keys.Apply):
		return m, func() tea.Msg { return ApplyTemplateMsg{} }
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Profile"))
	b.WriteString("\n")
	b.WriteString(row("Avatar", orNone(m.prefs.Avatar)))
	b.WriteString(row("Motto", m.prefs.DisplayMotto()))
	b.WriteString(row("Required weekdays", m.prefs.RequiredWeekdays.String()))

	var tmpl strings.Builder
	tmpl.WriteString(titleStyle.Render("Day template"))
	tmpl.WriteString("\n")
	if len(m.prefs.DayTemplate) == 0 {
		tmpl.WriteString(labelStyle.Render("(empty)"))
		tmpl.WriteString("\n")
	}
	for i, it := range m.prefs.DayTemplate {
		line := fmt.Sprintf("%d. %s (%s, %s)", i+1, it.Title, it.Category, it.Window.Label())
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		tmpl.WriteString(line)
		tmpl.WriteString("\n")
	}
	b.WriteString(sectionStyle.Render(tmpl.String()))
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label+":"), valueStyle.Render(value)) + "\n"
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
