// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package employeeapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rosterdesk/rosterdesk/lib/employee"
)

// MaxResponseSize bounds how much of a response body is read. A roster
// of a few thousand records is well under a megabyte; the bound only
// guards against a misbehaving server.
const MaxResponseSize int64 = 32 << 20

// envelope is the wire shape of every API response:
//
//	{"success": true, "message": "...", "employees": [...]}
//
// Success is a pointer so a body without the key can be told apart from
// an explicit false.
type envelope struct {
	Success   *bool           `json:"success"`
	Message   string          `json:"message"`
	Employees json.RawMessage `json:"employees"`
}

// exchange is one completed HTTP round trip.
type exchange struct {
	status    int
	body      []byte
	requestID string
}

// readBody reads a response body up to MaxResponseSize bytes.
func readBody(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// interpret maps an exchange onto the error vocabulary. It returns the
// decoded envelope when the server reported success.
func interpret(operation string, result exchange) (envelope, error) {
	var decoded envelope
	decodeErr := json.Unmarshal(result.body, &decoded)

	fail := func(kind Kind, message string, cause error) (envelope, error) {
		return envelope{}, &Error{
			Operation: operation,
			Kind:      kind,
			Status:    result.status,
			Message:   message,
			RequestID: result.requestID,
			Err:       cause,
		}
	}

	message := decoded.Message
	if decodeErr != nil || message == "" {
		message = statusMessage(result)
	}

	switch {
	case result.status == http.StatusUnauthorized || result.status == http.StatusForbidden:
		return fail(KindAuth, message, nil)
	case result.status == http.StatusTooManyRequests || result.status >= 500:
		return fail(KindInternal, message, nil)
	case len(result.body) == 0 && isSuccessStatus(result.status):
		return envelope{}, nil
	case decodeErr != nil && isSuccessStatus(result.status):
		return fail(KindInternal, "undecodable response", decodeErr)
	case decodeErr != nil:
		return fail(KindInternal, message, nil)
	case decoded.Success != nil && !*decoded.Success:
		return fail(KindRejection, message, nil)
	case !isSuccessStatus(result.status):
		return fail(KindRejection, message, nil)
	}
	return decoded, nil
}

// decodeEmployees extracts the roster from a successful list envelope.
// A null roster is empty; a missing one is a protocol error.
func decodeEmployees(decoded envelope) ([]employee.Employee, error) {
	if len(decoded.Employees) == 0 {
		return nil, fmt.Errorf("response has no employees field")
	}
	var employees []employee.Employee
	if err := json.Unmarshal(decoded.Employees, &employees); err != nil {
		return nil, fmt.Errorf("decoding employees: %w", err)
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	return employees, nil
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

// statusMessage describes a response that carried no usable message:
// a short body excerpt when there is one, otherwise the status text.
func statusMessage(result exchange) string {
	excerpt := strings.TrimSpace(string(result.body))
	if excerpt != "" && !strings.HasPrefix(excerpt, "{") && !strings.HasPrefix(excerpt, "<") {
		if len(excerpt) > 200 {
			excerpt = excerpt[:200] + "..."
		}
		return excerpt
	}
	if text := http.StatusText(result.status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", result.status)
}
