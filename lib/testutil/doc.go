// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern so tests that wait on goroutines never hang forever. They
// are the only place in the test suite that uses a wall-clock timeout.
//
// [WriteFile] drops a fixture into a test's temporary directory.
// [UniqueID] and [UniqueEmail] produce distinguishable values for
// records created during a test.
//
// Helpers call t.Fatalf on failure; setup failures are not
// recoverable.
package testutil
