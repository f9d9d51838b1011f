// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar renders a one-column scrollbar of the given height
// for a list of totalItems rows showing visibleItems rows from
// scrollOffset. When everything fits the thumb fills the track.
func RenderScrollbar(theme Theme, height, totalItems, visibleItems, scrollOffset int) string {
	if height <= 0 {
		return ""
	}

	track := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("│")
	thumb := lipgloss.NewStyle().Foreground(theme.Accent).Render("┃")

	thumbSize, thumbOffset := height, 0
	if totalItems > visibleItems && totalItems > 0 {
		thumbSize = max(1, height*visibleItems/totalItems)
		scrollable := totalItems - visibleItems
		if trackRange := height - thumbSize; trackRange > 0 {
			thumbOffset = min(scrollOffset*trackRange/scrollable, trackRange)
		}
	}

	lines := make([]string, height)
	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumb
		} else {
			lines[index] = track
		}
	}
	return strings.Join(lines, "\n")
}
