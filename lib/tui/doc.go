// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds terminal UI building blocks shared by rosterdesk's
// interactive views: the color theme, ANSI-aware overlay splicing and
// cell fitting, a dropdown overlay, and a scrollbar. Built on
// lipgloss and x/ansi; the bubbletea models that use them live in
// their own packages and own all state and layout decisions.
package tui
