// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package rosterui is the interactive employee roster: a bubbletea
// program showing the searchable, sortable table with a create modal,
// delete confirmation and hand-off to an external editor.
//
// The model never blocks its event loop. Every API call runs as a
// tea.Cmd and comes back as a message; roster fetches carry the ticket
// issued by roster.Model.BeginRefresh, so a slow response that lost a
// race with a newer fetch is dropped instead of overwriting fresher
// data. Create and delete go through the same employeeform.Controller
// the scriptable CLI uses, and their notices appear in the status bar
// for a few seconds.
//
// Layout, top to bottom:
//
//	─── Employee List ───────────────── Total Count: 12 ─
//	 Search: ann
//	 Unique Id  Image  Name ▲  Email  Mobile No  …
//	 ─────────────────────────────────────────────────
//	 rows…                                            ┃
//	 ─────────────────────────────────────────────────
//	 status bar: notice, prompt, fetch error, or key help
package rosterui
