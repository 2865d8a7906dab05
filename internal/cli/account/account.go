package account

import (
	"fmt"

	"github.com/julianstephens/upbeat/internal/cli"
)

type RegisterCmd struct {
	Username string `arg:"" help:"Username for the new account."`
	Password string `short:"p" help:"Password (prompted for when omitted)."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	password, err := cli.ResolvePassword(c.Password)
	if err != nil {
		return err
	}
	acc, err := ctx.Tracker.Register(c.Username, password)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Registered and logged in as %s\n", acc.Username)
	return nil
}

type LoginCmd struct {
	Username string `arg:"" help:"Username."`
	Password string `short:"p" help:"Password (prompted for when omitted)."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	password, err := cli.ResolvePassword(c.Password)
	if err != nil {
		return err
	}
	acc, err := ctx.Tracker.Login(c.Username, password)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Logged in as %s\n", acc.Username)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.Logout(); err != nil {
		return err
	}
	fmt.Println("✓ Logged out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	acc, err := ctx.Tracker.Current()
	if err != nil {
		return err
	}
	fmt.Printf("%s (member since %s)\n", acc.Username, acc.CreatedAt)
	return nil
}
