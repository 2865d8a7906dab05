package templates

import (
	"fmt"
	"strings"

	"github.com/julianstephens/upbeat/internal/cli"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/tracker"
	"github.com/julianstephens/upbeat/internal/validation"
)

type TemplateAddCmd struct {
	Title    string `arg:"" optional:"" help:"Item title (defaults to \"New task\")."`
	Category string `short:"c" help:"Category." enum:"Study,Fitness,Life,Other" default:"Study"`
	Window   string `short:"w" help:"Time window as HH:MM-HH:MM; omit for any time."`
}

func (c *TemplateAddCmd) Run(ctx *cli.Context) error {
	window, err := validation.ParseWindow(c.Window)
	if err != nil {
		return err
	}
	prefs, err := ctx.Tracker.AddTemplateItem(models.TemplateItem{
		Title:    c.Title,
		Category: c.Category,
		Window:   window,
	})
	if err != nil {
		return err
	}
	item := prefs.DayTemplate[len(prefs.DayTemplate)-1]
	fmt.Printf("✓ Added template item %d: %s\n", len(prefs.DayTemplate), item.Title)
	return nil
}

type TemplateListCmd struct{}

func (c *TemplateListCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Tracker.Preferences()
	if err != nil {
		return err
	}

	fmt.Printf("Required weekdays: %s\n\n", prefs.RequiredWeekdays)
	if len(prefs.DayTemplate) == 0 {
		fmt.Println("The day template is empty. Add an item with 'upbeat template add'.")
		return nil
	}
	for i, item := range prefs.DayTemplate {
		fmt.Printf("%3d. %-24s  %-8s  %s\n", i+1, item.Title, item.Category, item.Window.Label())
	}
	return nil
}

type TemplateEditCmd struct {
	Index    int     `arg:"" help:"Item number as shown by 'upbeat template list'."`
	Title    *string `short:"t" help:"New title."`
	Category *string `short:"c" help:"New category (Study, Fitness, Life or Other)."`
	Window   *string `short:"w" help:"New time window as HH:MM-HH:MM, or \"any\"."`
}

func (c *TemplateEditCmd) Run(ctx *cli.Context) error {
	patch := tracker.TemplatePatch{Title: c.Title, Category: c.Category}
	if c.Window != nil {
		w, err := validation.ParseWindow(*c.Window)
		if err != nil {
			return err
		}
		patch.Window = &w
	}
	if patch.Title == nil && patch.Category == nil && patch.Window == nil {
		return fmt.Errorf("nothing to change, pass --title, --category or --window")
	}

	prefs, err := ctx.Tracker.UpdateTemplateItem(c.Index-1, patch)
	if err != nil {
		return err
	}
	item := prefs.DayTemplate[c.Index-1]
	fmt.Printf("✓ Updated template item %d: %s (%s, %s)\n", c.Index, item.Title, item.Category, item.Window.Label())
	return nil
}

type TemplateRemoveCmd struct {
	Index int `arg:"" help:"Item number as shown by 'upbeat template list'."`
}

func (c *TemplateRemoveCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Tracker.RemoveTemplateItem(c.Index - 1); err != nil {
		return err
	}
	fmt.Printf("✓ Removed template item %d\n", c.Index)
	return nil
}

type TemplateApplyCmd struct {
	Days int `short:"n" help:"Number of days to plan, today included." default:"7"`
}

func (c *TemplateApplyCmd) Run(ctx *cli.Context) error {
	written, err := ctx.Tracker.ApplyTemplate(c.Days)
	if err != nil {
		return err
	}
	if len(written) == 0 {
		fmt.Println("No required weekdays in range, nothing planned.")
		return nil
	}
	fmt.Printf("Planned %d day(s): %s\n", len(written), strings.Join(written, ", "))
	return nil
}
