// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package employeeapi

import (
	"context"
)

// retry runs call up to maxAttempts times while it fails transiently:
// no response, HTTP 429, or HTTP 5xx. Anything else (auth, rejection,
// an undecodable 2xx) is permanent and returned at once. Waits double
// from initialBackoff (500ms, 1s, 2s, ...) on the client's clock.
//
// The caller's context bounds the whole sequence: once it is done no
// further attempt starts and the last attempt's error is returned.
func (client *Client) retry(ctx context.Context, operation string, call func(attempt int) error) error {
	var lastError error
	for attempt := 1; attempt <= client.maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := client.initialBackoff << (attempt - 2)
			select {
			case <-ctx.Done():
				return lastError
			case <-client.clock.After(backoff):
			}
		}

		err := call(attempt)
		if err == nil {
			return nil
		}
		lastError = err

		if !isTransient(err) || ctx.Err() != nil {
			return err
		}
		if attempt < client.maxAttempts {
			client.logger.Warn("transient employee API failure, retrying",
				"operation", operation,
				"attempt", attempt,
				"error", err,
			)
		}
	}
	return lastError
}
