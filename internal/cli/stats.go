package cli

import (
	"fmt"

	"github.com/julianstephens/upbeat/internal/validation"
)

type StatsCmd struct {
	Days []int `help:"Trailing windows in days (defaults to the configured windows)."`
	Raw  bool  `help:"Print the markdown report without rendering it."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	for _, d := range c.Days {
		if err := validation.ValidateDays(d); err != nil {
			return err
		}
	}

	windows := c.Days
	if len(windows) == 0 {
		windows = ctx.Config.Stats.Windows
	}
	report, err := ctx.Tracker.StatsFor(windows)
	if err != nil {
		return err
	}

	if c.Raw {
		fmt.Print(report.Markdown())
		return nil
	}
	fmt.Print(RenderMarkdown(report.Markdown()))
	return nil
}
