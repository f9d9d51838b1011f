// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Rosterdesk is the employee roster admin panel: an interactive
// terminal UI (the default) plus scriptable subcommands for listing,
// creating and deleting employees and for managing the operator
// session.
//
// Usage:
//
//	rosterdesk [--config PATH] [--log-output PATH] [command]
//
// Run 'rosterdesk --help' for the command list.
package main
