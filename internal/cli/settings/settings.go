package settings

import (
	"fmt"

	"github.com/julianstephens/upbeat/internal/cli"
	"github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/utils"
)

type PrefsShowCmd struct{}

func (c *PrefsShowCmd) Run(ctx *cli.Context) error {
	acc, err := ctx.Tracker.Current()
	if err != nil {
		return err
	}
	prefs, err := ctx.Tracker.Preferences()
	if err != nil {
		return err
	}

	avatar := prefs.Avatar
	if avatar == "" {
		avatar = "(none)"
	}
	fmt.Println("Profile:")
	fmt.Printf("  User:              %s\n", acc.Username)
	fmt.Printf("  Motto:             %s\n", prefs.DisplayMotto())
	fmt.Printf("  Avatar:            %s\n", avatar)
	fmt.Printf("  Required weekdays: %s\n", prefs.RequiredWeekdays)
	fmt.Printf("  Template items:    %d\n", len(prefs.DayTemplate))
	fmt.Println()
	fmt.Println("Settings:")
	fmt.Printf("  Settings file:     %s\n", ctx.SettingsPath)
	fmt.Printf("  Storage:           %s\n", ctx.Store.GetConfigPath())
	fmt.Printf("  Timezone:          %s\n", ctx.Config.Timezone)
	fmt.Printf("  Stats windows:     %v\n", ctx.Config.Stats.Windows)
	return nil
}

type PrefsMottoCmd struct {
	Motto string `arg:"" help:"Motto shown on the main screen; empty restores the default."`
}

func (c *PrefsMottoCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Tracker.SetMotto(c.Motto)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Motto set: %s\n", prefs.DisplayMotto())
	return nil
}

type PrefsAvatarCmd struct {
	Avatar string `arg:"" help:"Image path or data URL."`
}

func (c *PrefsAvatarCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Tracker.SetAvatar(c.Avatar); err != nil {
		return err
	}
	fmt.Println("✓ Avatar updated")
	return nil
}

type PrefsWeekdaysCmd struct {
	Weekdays string `arg:"" help:"Comma-separated weekdays (mon,tue or 1,2), or all, weekdays, weekends, none."`
}

func (c *PrefsWeekdaysCmd) Run(ctx *cli.Context) error {
	days, err := utils.ParseWeekdays(c.Weekdays)
	if err != nil {
		return errors.Invalid("%v", err)
	}
	prefs, err := ctx.Tracker.SetWeekdays(models.WeekdaysFrom(days))
	if err != nil {
		return err
	}
	fmt.Printf("✓ Required weekdays: %s\n", prefs.RequiredWeekdays)
	return nil
}
