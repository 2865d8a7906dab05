package tasks

import (
	"fmt"

	"github.com/julianstephens/upbeat/internal/cli"
	"github.com/julianstephens/upbeat/internal/validation"
)

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Category string `short:"c" help:"Category." enum:"Study,Fitness,Life,Other" default:"Study"`
	Window   string `short:"w" help:"Time window as HH:MM-HH:MM; omit for any time."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	window, err := validation.ParseWindow(c.Window)
	if err != nil {
		return err
	}
	task, err := ctx.Tracker.AddTask(c.Title, c.Category, window)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added task: %s (%s, %s)\n", task.Title, task.Category, task.Window.Label())
	return nil
}

type TaskListCmd struct{}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Tracker.ListTasks()
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks yet. Add one with 'upbeat task add <title>'.")
		return nil
	}

	fmt.Printf("%-36s  %-24s  %-8s  %s\n", "ID", "TITLE", "CATEGORY", "WINDOW")
	for _, t := range tasks {
		fmt.Printf("%-36s  %-24s  %-8s  %s\n", t.ID, t.Title, t.Category, t.Window.Label())
	}
	return nil
}

type TaskRemoveCmd struct {
	Task string `arg:"" help:"ID or title of the task."`
}

func (c *TaskRemoveCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Tracker.RemoveTask(c.Task)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Removed task: %s (check history kept)\n", task.Title)
	return nil
}
