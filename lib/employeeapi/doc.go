// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package employeeapi is the HTTP client for the remote employee API.
//
// Three operations are exposed, each taking the bearer credential as an
// explicit argument:
//
//   - [Client.ListEmployees]: GET /getAllEmployee
//   - [Client.CreateEmployee]: POST /createEmployee (multipart form)
//   - [Client.DeleteEmployee]: DELETE /deleteEmployee/{id}
//
// All responses share the envelope {success, message, employees?}.
// Failures are returned as *[Error] with a [Kind] that tells the caller
// what happened: no response ([KindNetwork]), credential refused or
// absent ([KindAuth]), the server said no ([KindRejection]), or the
// response made no sense ([KindInternal]). A missing credential fails
// before any request is sent.
//
// List and delete are idempotent and retried with exponential backoff
// on transient failures. Create is not: a retried POST whose first
// attempt reached the server would create a duplicate record.
//
// Every request carries a fresh X-Request-ID, logged with its outcome
// and recorded on any returned Error, so a failure the operator sees
// can be matched against server logs.
package employeeapi
