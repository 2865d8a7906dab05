package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/upbeat/internal/constants"
)

// toastSink collects the tracker's notifications until the model shows them.
type toastSink struct {
	pending []string
}

func (s *toastSink) Notify(text string) error {
	s.pending = append(s.pending, text)
	return nil
}

// take returns the newest pending notification and clears the queue.
func (s *toastSink) take() (string, bool) {
	if len(s.pending) == 0 {
		return "", false
	}
	text := s.pending[len(s.pending)-1]
	s.pending = nil
	return text, true
}

type clearToastMsg struct {
	seq int
}

// showToast displays any pending notification and schedules its dismissal.
// A newer toast outlives the timer of an older one.
func (m *Model) showToast() tea.Cmd {
	text, ok := m.toasts.take()
	if !ok {
		return nil
	}
	m.toast = text
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(constants.ToastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}
