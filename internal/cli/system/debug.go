package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/upbeat/internal/cli"
)

type DebugCmd struct {
	DBPath    *DebugDBPathCmd    `cmd:"" help:"Show database path."`
	DumpToday *DebugDumpTodayCmd `cmd:"" help:"Dump today's projection as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path":     ctx.Store.GetConfigPath(),
		"settings": ctx.SettingsPath,
	})
}

type DebugDumpTodayCmd struct{}

type dumpEntry struct {
	Ref      string `json:"ref"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Window   string `json:"window"`
	Template bool   `json:"template"`
}

func (cmd *DebugDumpTodayCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Tracker.Today()
	if err != nil {
		return err
	}
	out := make([]dumpEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dumpEntry{
			Ref:      e.Ref(),
			Title:    e.Title(),
			Category: e.Category(),
			Window:   e.Window().Label(),
			Template: e.IsTemplate(),
		})
	}
	return printJSON(out)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
