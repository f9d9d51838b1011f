// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package roster holds the client-side list view model: the cached
// roster fetched from the employee API, the search keyword, and the
// sort key and direction.
//
// The roster is the single source of truth. It is only ever replaced
// wholesale by a successful fetch, never patched in place. What the
// table shows is [Model.Project]: a pure function of (roster, keyword,
// sort key, direction), recomputed on demand and never stored.
//
// Fetches may overlap (a manual refresh while the post-create refresh
// is still in flight). Each fetch takes a [Ticket] from
// [Model.BeginRefresh]; [Model.CompleteRefresh] applies a response only
// if its ticket is the newest issued, so a slow stale response can
// never overwrite a fresher one.
package roster
