// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rosterdesk/rosterdesk/lib/employeeapi"
	"github.com/rosterdesk/rosterdesk/lib/panel"
	"github.com/rosterdesk/rosterdesk/lib/session"
)

// ErrorCategory tells a script what to do about a failed command
// without parsing the message.
type ErrorCategory string

const (
	// CategoryValidation: bad arguments or flags, or input the server
	// refused. Fix the input and run again.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: the named employee does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden: no session, or the server refused the token.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryTransient: the server was unreachable or overloaded.
	// Running again later may succeed.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal: anything else, including responses the client
	// could not interpret.
	CategoryInternal ErrorCategory = "internal"
)

// exitCodes maps categories to process exit codes. 1 is reserved for
// uncategorized failures.
var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryNotFound:   3,
	CategoryForbidden:  4,
	CategoryTransient:  5,
	CategoryInternal:   1,
}

// ToolError is a categorized command failure. It wraps the underlying
// error so errors.Is and errors.As still see the cause.
type ToolError struct {
	Category ErrorCategory

	// Hint is an optional next step printed under the error.
	Hint string

	Err error
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// ExitCode returns the exit code for the error's category.
func (e *ToolError) ExitCode() int {
	if code, ok := exitCodes[e.Category]; ok {
		return code
	}
	return 1
}

// WithHint returns e with hint set.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

const loginHint = "run 'rosterdesk login --token TOKEN' to sign in"

// Classify wraps err in a ToolError chosen from what it wraps: API
// error kinds, a missing session, or cancellation. Errors that are
// already ToolErrors and nil pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return err
	}

	switch {
	case errors.Is(err, panel.ErrNoCredential), errors.Is(err, session.ErrNoSession):
		return &ToolError{Category: CategoryForbidden, Hint: loginHint, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &ToolError{Category: CategoryTransient, Err: err}
	}

	var apiError *employeeapi.Error
	if !errors.As(err, &apiError) {
		return &ToolError{Category: CategoryInternal, Err: err}
	}
	switch apiError.Kind {
	case employeeapi.KindAuth:
		return &ToolError{Category: CategoryForbidden, Hint: loginHint, Err: err}
	case employeeapi.KindNetwork:
		return &ToolError{Category: CategoryTransient, Hint: "check api.base_url and that the server is running", Err: err}
	case employeeapi.KindRejection:
		if apiError.Status == http.StatusNotFound {
			return &ToolError{Category: CategoryNotFound, Err: err}
		}
		return &ToolError{Category: CategoryValidation, Err: err}
	}
	if apiError.Status == http.StatusTooManyRequests || apiError.Status >= 500 {
		return &ToolError{Category: CategoryTransient, Err: err}
	}
	return &ToolError{Category: CategoryInternal, Err: err}
}
