// Package notifier delivers short confirmation messages such as
// "Checked in ✅" to the console, the tray companion app, or both.
package notifier

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Sink receives user-facing notifications.
type Sink interface {
	Notify(text string) error
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(string) error { return nil }

// Multi fans a notification out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Notify(text string) error {
	var errs []error
	for _, s := range m {
		if err := s.Notify(text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var toastStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFDF5")).
	Background(lipgloss.Color("#25A065")).
	Padding(0, 1)

// Console writes a styled toast line to W.
type Console struct {
	W io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{W: w}
}

func (c *Console) Notify(text string) error {
	_, err := fmt.Fprintln(c.W, toastStyle.Render(text))
	return err
}
