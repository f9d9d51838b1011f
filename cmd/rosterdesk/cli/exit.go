// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
)

// ExitError ends the process with Code and no error line. The command
// has already written whatever the user needs to see.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the code main exits with.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Report writes err to w the way main presents it and returns the
// process exit code: 0 for nil, the ExitError code without output, a
// ToolError's category code with its hint, and 1 otherwise.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code
	}
	fmt.Fprintf(w, "error: %v\n", err)
	var toolError *ToolError
	if errors.As(err, &toolError) {
		if toolError.Hint != "" {
			fmt.Fprintf(w, "hint: %s\n", toolError.Hint)
		}
		return toolError.ExitCode()
	}
	return 1
}
