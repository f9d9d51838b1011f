// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package employeeapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed API call by what the caller can do about it.
type Kind string

const (
	// KindNetwork means no response arrived: connection refused, DNS
	// failure, timeout, or cancellation.
	KindNetwork Kind = "network"

	// KindAuth means the credential was missing, expired, or refused
	// (HTTP 401/403).
	KindAuth Kind = "auth"

	// KindRejection means the server answered with success:false. The
	// Message carries the server's explanation.
	KindRejection Kind = "rejection"

	// KindInternal means the server answered with something the client
	// could not interpret: an unexpected status or an undecodable body.
	KindInternal Kind = "internal"
)

// Error is returned by every Client method that fails.
type Error struct {
	// Operation names the call: "list", "create" or "delete".
	Operation string

	Kind Kind

	// Status is the HTTP status code, or zero when no response arrived.
	Status int

	// Message is the server-supplied message when there was one,
	// otherwise a short description of the failure.
	Message string

	// RequestID is the X-Request-ID sent with the failing request.
	RequestID string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	prefix := e.Operation + ": " + string(e.Kind)
	if e.Status != 0 {
		prefix += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	case e.Message != "":
		return prefix + ": " + e.Message
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	return prefix
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiError *Error
	return errors.As(err, &apiError) && apiError.Kind == kind
}

// ErrMissingCredential is the cause recorded when a call is attempted
// without a bearer credential. No request is sent in that case.
var ErrMissingCredential = errors.New("no credential")

// isTransient reports whether err is worth retrying: the request never
// got an answer, or the server signalled overload (429) or failure
// (5xx). The retry loop checks the caller's context separately.
func isTransient(err error) bool {
	var apiError *Error
	if !errors.As(err, &apiError) {
		return false
	}
	if apiError.Kind == KindNetwork {
		return true
	}
	return apiError.Status == http.StatusTooManyRequests || apiError.Status >= 500
}
