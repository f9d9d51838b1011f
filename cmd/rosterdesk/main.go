// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rosterdesk/rosterdesk/cmd/rosterdesk/cli"
	"github.com/rosterdesk/rosterdesk/cmd/rosterdesk/commands"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &commands.App{Stdout: os.Stdout, Stderr: os.Stderr}
	return cli.Report(os.Stderr, commands.Root(app).Execute(ctx, os.Args[1:]))
}
