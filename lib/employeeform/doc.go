// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package employeeform owns the create-employee draft and the mutation
// flows that change the roster on the server.
//
// The creation surface (the modal in the terminal UI, or a single
// `rosterdesk create` invocation) moves through three states:
//
//	Closed --Open--> Open --BeginSubmit--> Submitting
//	  ^               |                       |
//	  +----Cancel-----+                       |
//	  ^               ^------ rejected -------+
//	  +------------ created ------------------+
//
// The surface closes only when the server confirms creation. A
// rejection or transport failure returns it to Open with the draft
// intact, so the operator can correct it and try again. While a submit
// is in flight a second one is refused with [ErrSubmitInFlight].
//
// Outcomes are reported through a [Notifier]. The caller performs the
// roster refresh that follows a successful mutation: [Controller.Submit]
// and [Controller.Delete] take it as a callback, while the terminal UI
// drives [Controller.BeginSubmit] and [Controller.CompleteSubmit] from
// its event loop and issues the refresh as a command.
package employeeform
