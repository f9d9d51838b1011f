// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package session stores the operator's API credential between runs.
//
// "rosterdesk login --token TOKEN" writes a small JSON file readable
// only by its owner; every other command loads it and sends the token
// as a bearer credential. The file may carry comments and trailing
// commas (it is read as JSONC) so operators can annotate it by hand.
package session
