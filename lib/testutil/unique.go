// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns "prefix-N" with N monotonically increasing across
// the test binary.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}

// UniqueEmail returns an address that no other call in this test
// binary returns ("ann-3@example.com").
func UniqueEmail(local string) string {
	return UniqueID(local) + "@example.com"
}
