// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the rosterdesk
// binary: a tree of [Command] values dispatched by name, pflag-based
// flag parsing driven by struct tags ([FlagsFromParams]), typo
// suggestions for unknown commands and flags, categorized errors
// ([ToolError]) that main maps to exit codes, and the command logger.
package cli
