// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/rosterdesk/rosterdesk/cmd/rosterdesk/cli"
	"github.com/rosterdesk/rosterdesk/lib/rosterui"
)

func uiCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "ui",
		Summary: "Open the interactive roster (default)",
		Description: `Open the interactive roster.

Keys: / search, 1-8 or s sort, S reverse, c create, d delete, e edit in
the configured editor plugin, r refresh, q quit. Signed out, the roster
stays empty until 'rosterdesk login' stores a token.

Warnings and errors appear in the status bar; --log-output keeps every
record as JSON.`,
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			loaded, err := app.loadConfig()
			if err != nil {
				return err
			}

			display := rosterui.NewTUILogHandler(max(loaded.SlogLevel(), slog.LevelWarn))
			logger, closeLog, err := app.logger(loaded, display)
			if err != nil {
				return err
			}
			defer closeLog()
			logger = logger.With("command", "ui")

			token, err := app.credential(loaded)
			if err != nil {
				return err
			}
			if token == "" {
				logger.Warn("not signed in; run 'rosterdesk login --token TOKEN'")
			}
			client, err := app.client(loaded, logger)
			if err != nil {
				return err
			}

			model := rosterui.New(client, token, rosterui.Options{
				Editor:         rosterui.NewPluginEditor(loaded.UI.EditorPlugin, client.BaseURL(), app.sessionPath(loaded)),
				Logger:         logger,
				NoticeDuration: loaded.UI.NoticeDuration,
			})
			if err := rosterui.Run(ctx, model, display); err != nil {
				return cli.Internal("running the roster UI: %w", err)
			}
			return nil
		},
	}
}
