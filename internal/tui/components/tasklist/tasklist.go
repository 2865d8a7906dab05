package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/upbeat/internal/scheduler"
)

type AddTaskMsg struct{}

type CheckInMsg struct {
	Entry scheduler.Entry
}

type MakeUpMsg struct {
	Entry scheduler.Entry
}

// DeleteTaskMsg asks to remove a persistent task. Template entries are
// removed from the day template instead and never produce this message.
type DeleteTaskMsg struct {
	ID    string
	Title string
}

type Item struct {
	Entry scheduler.Entry
	Done  bool
}

func (i Item) Title() string {
	mark := "○"
	if i.Done {
		mark = "✓"
	}
	return mark + " " + i.Entry.Title()
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s", i.Entry.Category(), i.Entry.Window().Label())
	if i.Entry.IsTemplate() {
		desc += " | template"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Title() }

type KeyMap struct {
	Add    key.Binding
	Check  key.Binding
	MakeUp key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Check: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter/c", "check in"),
		),
		MakeUp: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "make up"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Check, keys.MakeUp, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Check, keys.MakeUp, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

// SetEntries replaces the list with entries. done holds the refs that
// already have a check for the day shown.
func (m *Model) SetEntries(entries []scheduler.Entry, done map[string]bool) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e, Done: done[e.Ref()]}
	}
	m.list.SetItems(items)
}

func (m Model) Items() []Item {
	out := make([]Item, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok {
			out = append(out, i)
		}
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Check):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return CheckInMsg{Entry: i.Entry} }
			}
			return m, nil
		case key.Matches(msg, m.keys.MakeUp):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return MakeUpMsg{Entry: i.Entry} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Entry.IsTemplate() {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: i.Entry.Ref(), Title: i.Entry.Title()} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Nothing to do today.\n  Press 'a' to add a task."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
