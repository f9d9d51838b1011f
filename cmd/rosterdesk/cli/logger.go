// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	Level slog.Leveler

	// Format is "text", "json", or "auto": text when Stderr is a
	// terminal, JSON otherwise.
	Format string

	// Stderr receives command logs. Nil means os.Stderr.
	Stderr io.Writer

	// Display replaces Stderr as the interactive destination, e.g. the
	// TUI's status-bar handler while the alternate screen is up.
	Display slog.Handler

	// LogOutput, if set, is a file that receives every record at debug
	// level and above as JSON, in addition to the display.
	LogOutput string
}

// NewLogger builds the command logger. The returned function closes
// the log file, if one was opened.
//
// Callers scope it with command context:
//
//	logger = logger.With("command", "delete", "employee_id", id)
func NewLogger(options LoggerOptions) (*slog.Logger, func(), error) {
	level := options.Level
	if level == nil {
		level = slog.LevelInfo
	}

	display := options.Display
	if display == nil {
		stderr := options.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		handlerOptions := &slog.HandlerOptions{Level: level}
		if useTextFormat(options.Format, stderr) {
			display = slog.NewTextHandler(stderr, handlerOptions)
		} else {
			display = slog.NewJSONHandler(stderr, handlerOptions)
		}
	}

	if options.LogOutput == "" {
		return slog.New(display), func() {}, nil
	}
	file, err := os.Create(options.LogOutput)
	if err != nil {
		return nil, nil, fmt.Errorf("opening --log-output file: %w", err)
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(fanoutHandler{display, fileHandler}), func() { file.Close() }, nil
}

func useTextFormat(format string, stderr io.Writer) bool {
	switch format {
	case "text":
		return true
	case "json":
		return false
	}
	file, ok := stderr.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// fanoutHandler sends each record to every handler enabled for its
// level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
