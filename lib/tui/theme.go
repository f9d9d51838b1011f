// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color palette for rosterdesk's terminal UI. Colors are
// ANSI 256-color codes so they render the same in tmux, over SSH, and
// in plain xterms.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected table row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Table header. ActiveColumn marks the column with header focus.
	HeaderForeground lipgloss.Color
	ActiveColumn     lipgloss.Color

	BorderColor lipgloss.Color
	HelpText    lipgloss.Color

	// Notices and log records in the status bar.
	SuccessForeground lipgloss.Color
	FailureForeground lipgloss.Color
	WarningForeground lipgloss.Color

	// Modals and dropdowns.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color

	// Focused inputs, checked boxes, the scrollbar thumb.
	Accent lipgloss.Color
}

// LevelColor returns the status-bar color for a log level: failure
// for errors, warning for warnings, faint for anything quieter.
func (theme Theme) LevelColor(level slog.Level) lipgloss.Color {
	switch {
	case level >= slog.LevelError:
		return theme.FailureForeground
	case level >= slog.LevelWarn:
		return theme.WarningForeground
	default:
		return theme.FaintText
	}
}

// DefaultTheme targets 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	ActiveColumn:     lipgloss.Color("75"), // blue

	BorderColor: lipgloss.Color("240"),
	HelpText:    lipgloss.Color("241"),

	SuccessForeground: lipgloss.Color("114"), // green
	FailureForeground: lipgloss.Color("196"), // red
	WarningForeground: lipgloss.Color("220"), // amber

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),

	Accent: lipgloss.Color("220"),
}
