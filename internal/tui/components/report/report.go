package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/upbeat/internal/constants"
	"github.com/julianstephens/upbeat/internal/stats"
)

const maxBarWidth = 30

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065"))

	taskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Report   *stats.Report
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Report == nil {
		return "No statistics yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetReport(r stats.Report) {
	m.Report = &r
	m.Render()
}

// Render draws the daily bars of the shortest window, a sparkline per
// window, and the per-task totals.
func (m *Model) Render() {
	if m.Report == nil {
		m.viewport.SetContent("No statistics loaded.")
		return
	}
	r := m.Report

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render("Check-ins as of "+r.Today))
	fmt.Fprintf(&b, "%d total, %d in time, %d made up\n\n", r.Total, r.InTime, r.MakeUps)

	if len(r.Windows) > 0 {
		w := r.Windows[0]
		peak := stats.Peak(w.Series)
		for _, p := range w.Series {
			n := p.Count * maxBarWidth / peak
			fmt.Fprintf(&b, "%s %s %d\n", dayStyle.Render(dayLabel(p.Date)), barStyle.Render(strings.Repeat("█", n)), p.Count)
		}
		b.WriteString("\n")
	}

	for _, w := range r.Windows {
		fmt.Fprintf(&b, "%s %s %d\n", dayStyle.Render(fmt.Sprintf("Last %d days", w.Days)), barStyle.Render(stats.Sparkline(w.Series)), w.Total)
	}
	b.WriteString("\n")

	if len(r.Tasks) == 0 {
		b.WriteString(mutedStyle.Render("No tasks yet."))
		m.viewport.SetContent(b.String())
		return
	}
	for _, t := range r.Tasks {
		fmt.Fprintf(&b, "%s %s %d\n", taskStyle.Render(t.Title), mutedStyle.Render(t.Window), t.Count)
	}
	m.viewport.SetContent(b.String())
}

func dayLabel(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return t.Format("Mon 01-02")
}
