package cli

import "fmt"

type CheckCmd struct {
	Task string `arg:"" help:"Title, task ID or template reference from 'upbeat today'."`
	Date string `short:"d" help:"Make up a past day (YYYY-MM-DD) instead of checking in for today."`
}

func (c *CheckCmd) Run(ctx *Context) error {
	check, err := ctx.Tracker.CheckIn(c.Task, c.Date)
	if err != nil {
		return err
	}

	status := "in time"
	if !check.InTime {
		status = "outside its window"
	}
	fmt.Printf("Recorded %s for %s (%s)\n", c.Task, check.Date, status)
	return nil
}
