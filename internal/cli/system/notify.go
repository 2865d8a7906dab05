package system

import (
	"fmt"

	"github.com/julianstephens/upbeat/internal/cli"
	"github.com/julianstephens/upbeat/internal/notifier"
)

// NotifyCmd sends a toast through the configured sinks. Useful to check that
// the tray app receives notifications.
type NotifyCmd struct {
	Message string `arg:"" help:"Text to show."`
	Tray    bool   `help:"Send to the tray app even when it is disabled in settings."`
	DryRun  bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if c.DryRun {
		fmt.Println("[DryRun] " + c.Message)
		return nil
	}

	sink := ctx.Notifier
	if c.Tray {
		sink = notifier.NewTray()
	}
	if err := sink.Notify(c.Message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
