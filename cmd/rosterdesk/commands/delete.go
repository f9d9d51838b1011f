// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rosterdesk/rosterdesk/cmd/rosterdesk/cli"
)

func deleteCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete an employee by id",
		Usage:   "rosterdesk delete ID",
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return cli.Validation("delete takes exactly one employee id")
			}
			id := strings.TrimSpace(args[0])

			env, err := app.connect("delete")
			if err != nil {
				return err
			}
			defer env.close()

			outcome := env.panel.Form().CompleteDelete(id, env.panel.Remove(ctx, id))
			if !outcome.Succeeded {
				return cli.Classify(outcome.Err)
			}
			fmt.Fprintln(app.stdout(), outcome.Message)
			return nil
		},
	}
}
