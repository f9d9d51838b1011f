// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is one choice in a dropdown.
type DropdownOption struct {
	Label string // Shown in the menu.
	Value string // Stored on selection.
}

// DropdownOverlay is a floating single-choice menu anchored at a
// screen position. The owning model routes keys to it while it is
// open: up/down move the cursor, enter selects, escape dismisses.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int
	AnchorY int

	// Field names what the selection sets, e.g. "designation".
	Field string
}

// NewDropdown returns a dropdown over options with the cursor on the
// option whose Value equals current, or on the first option.
func NewDropdown(field string, options []DropdownOption, current string) *DropdownOverlay {
	dropdown := &DropdownOverlay{Options: options, Field: field}
	for index, option := range options {
		if option.Value == current {
			dropdown.Cursor = index
			break
		}
	}
	return dropdown
}

// MoveUp moves the cursor up, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Selected returns the highlighted option.
func (dropdown *DropdownOverlay) Selected() DropdownOption {
	return dropdown.Options[dropdown.Cursor]
}

// Width is the rendered width in columns: marker and space, the
// widest label, and one column of margin on each side.
func (dropdown *DropdownOverlay) Width() int {
	labelWidth := 0
	for _, option := range dropdown.Options {
		labelWidth = max(labelWidth, ansi.StringWidth(option.Label))
	}
	return 2 + labelWidth + 2
}

// Render returns the dropdown's lines, all the same width, for
// SpliceOverlay.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	innerWidth := dropdown.Width() - 2

	normal := lipgloss.NewStyle().
		Foreground(theme.OverlayForeground).
		Background(theme.OverlayBackground)
	highlighted := lipgloss.NewStyle().
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground)

	lines := make([]string, 0, len(dropdown.Options))
	for index, option := range dropdown.Options {
		style, marker := normal, " "
		if index == dropdown.Cursor {
			style, marker = highlighted, ">"
		}
		content := marker + " " + option.Label
		content += strings.Repeat(" ", max(0, innerWidth-ansi.StringWidth(content)))
		lines = append(lines, style.Render(" "+content+" "))
	}
	return lines
}
