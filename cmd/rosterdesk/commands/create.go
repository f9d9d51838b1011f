// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/rosterdesk/rosterdesk/cmd/rosterdesk/cli"
	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/employeeform"
)

type createParams struct {
	cli.JSONOutput
	Name        string   `flag:"name" desc:"full name"`
	Email       string   `flag:"email" desc:"email address"`
	Mobile      string   `flag:"mobile" desc:"mobile number"`
	Designation string   `flag:"designation" default:"HR" desc:"HR, Manager or Sales"`
	Gender      string   `flag:"gender" desc:"Male or Female"`
	Courses     []string `flag:"course" desc:"MCA, BCA or BSc; repeat for several"`
	Image       string   `flag:"image" desc:"path to a photo to upload"`
}

type createResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func createCommand(app *App) *cli.Command {
	var params createParams
	return &cli.Command{
		Name:    "create",
		Summary: "Create an employee",
		Description: `Create an employee.

Values are sent as given; the server decides what is acceptable and its
message is printed either way. On success the roster is re-read once.`,
		Usage: "rosterdesk create --name NAME --email EMAIL [--mobile N] [--designation D] [--gender G] [--course C]... [--image PATH]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("create", &params)
		},
		Examples: []cli.Example{{
			Command: "rosterdesk create --name 'Ann Lee' --email ann@example.com --gender Female --course MCA --course BSc --image ann.png",
		}},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}

			env, err := app.connect("create")
			if err != nil {
				return err
			}
			defer env.close()

			form := env.panel.Form()
			if err := fillDraft(form, params); err != nil {
				return err
			}
			outcome, err := env.panel.Submit(ctx)
			if err != nil {
				return cli.Internal("%w", err)
			}
			if !outcome.Succeeded {
				if outcome.Err != nil {
					return cli.Classify(outcome.Err)
				}
				return cli.Validation("%s", outcome.Message)
			}
			if outcome.RefreshErr != nil {
				env.logger.Warn("created, but re-reading the roster failed", "error", outcome.RefreshErr)
			}

			if done, err := params.EmitJSON(app.stdout(), createResult{Success: true, Message: outcome.Message}); done {
				return err
			}
			fmt.Fprintln(app.stdout(), outcome.Message)
			return nil
		},
	}
}

// fillDraft opens the form and copies the flags into its draft.
// Designation, gender and courses must be known values; the free-text
// fields are passed through.
func fillDraft(form *employeeform.Controller, params createParams) error {
	if err := form.Open(); err != nil {
		return cli.Internal("%w", err)
	}
	form.Reset()

	designation, err := employee.ParseDesignation(params.Designation)
	if err != nil {
		return cli.Validation("--designation: %w", err)
	}
	fields := map[employee.Field]string{
		employee.FieldName:        params.Name,
		employee.FieldEmail:       params.Email,
		employee.FieldMobile:      params.Mobile,
		employee.FieldDesignation: string(designation),
	}
	if params.Gender != "" {
		gender, err := employee.ParseGender(params.Gender)
		if err != nil {
			return cli.Validation("--gender: %w", err)
		}
		fields[employee.FieldGender] = string(gender)
	}
	for field, value := range fields {
		if err := form.SetField(string(field), value); err != nil {
			return cli.Internal("%w", err)
		}
	}

	for _, value := range params.Courses {
		course, err := employee.ParseCourse(value)
		if err != nil {
			return cli.Validation("--course: %w", err)
		}
		if err := form.ToggleCourse(course, true); err != nil {
			return cli.Internal("%w", err)
		}
	}

	if params.Image != "" {
		if err := form.LoadImage(params.Image); err != nil {
			return cli.Validation("--image: %w", err)
		}
	}
	return nil
}
