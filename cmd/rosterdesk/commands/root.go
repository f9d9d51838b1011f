// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/rosterdesk/rosterdesk/cmd/rosterdesk/cli"
	"github.com/rosterdesk/rosterdesk/lib/version"
)

// Root returns the rosterdesk command tree. With no command it opens
// the interactive UI.
func Root(app *App) *cli.Command {
	ui := uiCommand(app)
	return &cli.Command{
		Name: "rosterdesk",
		Description: `Rosterdesk: employee roster admin panel.

With no command, opens the interactive roster. The subcommands do the
same operations from scripts.`,
		Output: app.Stderr,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("rosterdesk", pflag.ContinueOnError)
			flagSet.StringVar(&app.configPath, "config", "", "YAML config file (default $ROSTERDESK_CONFIG)")
			flagSet.StringVar(&app.logOutput, "log-output", "", "also write JSON log records to this file")
			return flagSet
		},
		Run: ui.Run,
		Subcommands: []*cli.Command{
			ui,
			listCommand(app),
			createCommand(app),
			deleteCommand(app),
			loginCommand(app),
			logoutCommand(app),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string) error {
					fmt.Fprintf(app.stdout(), "rosterdesk %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{Description: "Open the roster", Command: "rosterdesk"},
			{Description: "Employees named Ann, newest first", Command: "rosterdesk list --search ann --sort createDate --direction desc"},
		},
	}
}
