// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package employee defines the employee record as served by the remote
// employee API, together with the enumerations the admin panel offers
// in its create form (designation, gender, courses).
//
// Records are owned by the server. The client holds a cached copy in
// the roster view model ([roster.Model]) and never patches a record in
// place: every mutation round-trips through the API and is followed by
// a full re-fetch.
//
// The wire format is the contract. [Employee] decodes the response
// shape the API actually produces, including two legacy quirks: record
// identifiers may arrive as JSON numbers or strings, and the courses
// field may arrive as a comma-joined string instead of an array (older
// records were created by a client that flattened the multi-select).
// Both are normalized on decode; encoding always produces the
// structured form.
package employee
