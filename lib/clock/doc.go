// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Production code holds a Clock (usually [Real]) instead of calling
// time.Now or time.After directly. Tests inject [Fake], which stands
// still until Advance is called:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go client.ListEmployees(ctx, credential) // waits on fake.After
//	fake.WaitForTimers(1)
//	fake.Advance(time.Second)
//
// WaitForTimers closes the race between a goroutine registering a
// wait and the test advancing past it.
package clock
