// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/rosterdesk/rosterdesk/cmd/rosterdesk/cli"
	"github.com/rosterdesk/rosterdesk/lib/session"
)

type loginParams struct {
	Token  string `flag:"token" desc:"bearer token issued by the employee API"`
	Verify bool   `flag:"verify" default:"true" desc:"check the token with a roster read before saving"`
}

func loginCommand(app *App) *cli.Command {
	var params loginParams
	return &cli.Command{
		Name:    "login",
		Summary: "Store the API token for later commands",
		Description: `Store the API bearer token in the session file (mode 0600).

The file is $ROSTERDESK_SESSION_FILE, session_file from the config, or
$XDG_CONFIG_HOME/rosterdesk/session.json.`,
		Usage: "rosterdesk login --token TOKEN [--verify=false]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("login", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			token := strings.TrimSpace(params.Token)
			if token == "" {
				return cli.Validation("--token is required")
			}

			loaded, err := app.loadConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := app.logger(loaded, nil)
			if err != nil {
				return err
			}
			defer closeLog()
			logger = logger.With("command", "login")

			if params.Verify {
				client, err := app.client(loaded, logger)
				if err != nil {
					return err
				}
				if _, err := client.ListEmployees(ctx, token); err != nil {
					return cli.Classify(fmt.Errorf("verifying token: %w", err))
				}
			}

			path := app.sessionPath(loaded)
			stored := &session.Session{Token: token, BaseURL: loaded.API.BaseURL, SavedAt: time.Now().UTC()}
			if err := session.Save(stored, path); err != nil {
				return cli.Internal("%w", err)
			}
			logger.Info("session saved", "path", path)
			fmt.Fprintf(app.stdout(), "Signed in. Session saved to %s\n", path)
			return nil
		},
	}
}

func logoutCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Remove the stored API token",
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			loaded, err := app.loadConfig()
			if err != nil {
				return err
			}
			path := app.sessionPath(loaded)
			if err := session.Clear(path); err != nil {
				return cli.Internal("%w", err)
			}
			fmt.Fprintln(app.stdout(), "Signed out.")
			return nil
		},
	}
}
