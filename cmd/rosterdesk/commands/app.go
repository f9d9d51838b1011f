// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the rosterdesk command tree.
package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/rosterdesk/rosterdesk/cmd/rosterdesk/cli"
	"github.com/rosterdesk/rosterdesk/lib/clock"
	"github.com/rosterdesk/rosterdesk/lib/config"
	"github.com/rosterdesk/rosterdesk/lib/employeeapi"
	"github.com/rosterdesk/rosterdesk/lib/panel"
	"github.com/rosterdesk/rosterdesk/lib/session"
)

// App holds what every command shares: output streams, the
// environment configuration is read from, and the global flags.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	// Environment replaces the process environment when non-nil.
	Environment map[string]string

	// EnvFiles overrides the dotenv files config loading reads. Nil
	// means the config package default.
	EnvFiles []string

	// Clock is passed to the API client. Nil means the real clock.
	Clock clock.Clock

	configPath string
	logOutput  string
}

// loadConfig reads configuration per the --config flag.
func (app *App) loadConfig() (*config.Config, error) {
	loaded, err := config.Load(config.Options{
		Path:        app.configPath,
		EnvFiles:    app.EnvFiles,
		Environment: app.Environment,
	})
	if err != nil {
		return nil, cli.Validation("%w", err).WithHint("check the --config file and ROSTERDESK_* variables")
	}
	return loaded, nil
}

// logger builds the command logger. display, when non-nil, replaces
// stderr as the interactive destination.
func (app *App) logger(loaded *config.Config, display slog.Handler) (*slog.Logger, func(), error) {
	logger, closeLog, err := cli.NewLogger(cli.LoggerOptions{
		Level:     loaded.SlogLevel(),
		Format:    loaded.Log.Format,
		Stderr:    app.Stderr,
		Display:   display,
		LogOutput: app.logOutput,
	})
	if err != nil {
		return nil, nil, cli.Validation("%w", err)
	}
	return logger, closeLog, nil
}

// sessionPath is the configured session file, or the default one.
func (app *App) sessionPath(loaded *config.Config) string {
	if loaded.SessionFile != "" {
		return loaded.SessionFile
	}
	return session.Path()
}

// credential returns the stored token, or "" when signed out.
func (app *App) credential(loaded *config.Config) (string, error) {
	stored, err := session.Load(app.sessionPath(loaded))
	if errors.Is(err, session.ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", cli.Internal("%w", err).WithHint("run 'rosterdesk logout' to remove a damaged session file")
	}
	return stored.Token, nil
}

func (app *App) client(loaded *config.Config, logger *slog.Logger) (*employeeapi.Client, error) {
	options := loaded.ClientOptions()
	options.Logger = logger
	options.Clock = app.Clock
	client, err := employeeapi.New(loaded.API.BaseURL, options)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	return client, nil
}

// environment is everything a non-interactive command needs.
type environment struct {
	config *config.Config
	logger *slog.Logger
	panel  *panel.Panel
	close  func()
}

// connect loads configuration, the logger and the session, and
// returns a panel that refuses to run signed out.
func (app *App) connect(command string) (*environment, error) {
	loaded, err := app.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := app.logger(loaded, nil)
	if err != nil {
		return nil, err
	}
	logger = logger.With("command", command)

	token, err := app.credential(loaded)
	if err != nil {
		closeLog()
		return nil, err
	}
	if token == "" {
		closeLog()
		return nil, cli.Classify(panel.ErrNoCredential)
	}
	client, err := app.client(loaded, logger)
	if err != nil {
		closeLog()
		return nil, err
	}
	return &environment{
		config: loaded,
		logger: logger,
		panel:  panel.New(client, token, nil, logger),
		close:  closeLog,
	}, nil
}

func (app *App) stdout() io.Writer {
	if app.Stdout != nil {
		return app.Stdout
	}
	return os.Stdout
}
