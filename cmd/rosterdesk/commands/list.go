// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/rosterdesk/rosterdesk/cmd/rosterdesk/cli"
	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/roster"
)

type listParams struct {
	cli.JSONOutput
	Search    string `flag:"search" desc:"show only employees whose name contains this (case-insensitive)"`
	Sort      string `flag:"sort" default:"name" desc:"sort field: id, name, email, mobile, designation, gender, courses, createDate"`
	Direction string `flag:"direction" default:"asc" desc:"sort direction: asc or desc"`
}

func listCommand(app *App) *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List employees",
		Usage:   "rosterdesk list [--search KEYWORD] [--sort FIELD] [--direction asc|desc] [--json]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			field, err := employee.ParseField(params.Sort)
			if err != nil {
				return cli.Validation("--sort: %w", err)
			}
			direction, err := roster.ParseDirection(params.Direction)
			if err != nil {
				return cli.Validation("--direction: %w", err)
			}

			env, err := app.connect("list")
			if err != nil {
				return err
			}
			defer env.close()

			if err := env.panel.Refresh(ctx); err != nil {
				return cli.Classify(err)
			}
			env.panel.Roster().SetKeyword(params.Search)
			env.panel.Roster().SetSort(roster.Sort{Field: field, Direction: direction})
			employees := env.panel.Projection()
			env.logger.Debug("listed employees", "count", len(employees), "search", params.Search)

			if done, err := params.EmitJSON(app.stdout(), employees); done {
				return err
			}
			return writeTable(app, employees)
		},
	}
}

// writeTable prints employees as an aligned table, one column per
// sortable field, with a bold header when stdout supports it.
func writeTable(app *App, employees []employee.Employee) error {
	var buffer bytes.Buffer
	table := tabwriter.NewWriter(&buffer, 2, 0, 2, ' ', 0)
	headers := make([]string, len(employee.SortableFields))
	for index, field := range employee.SortableFields {
		headers[index] = strings.ToUpper(field.Label())
	}
	fmt.Fprintln(table, strings.Join(headers, "\t"))
	for _, entry := range employees {
		cells := make([]string, len(employee.SortableFields))
		for index, field := range employee.SortableFields {
			cells[index] = entry.DisplayValue(field)
			if cells[index] == "" {
				cells[index] = "-"
			}
		}
		fmt.Fprintln(table, strings.Join(cells, "\t"))
	}
	if err := table.Flush(); err != nil {
		return err
	}

	output := termenv.NewOutput(app.stdout())
	header, body, _ := strings.Cut(buffer.String(), "\n")
	fmt.Fprintln(output, output.String(header).Bold())
	fmt.Fprint(output, body)
	fmt.Fprintln(output, output.String(fmt.Sprintf("Total Count: %d", len(employees))).Faint())
	return nil
}
