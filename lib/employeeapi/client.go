// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package employeeapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rosterdesk/rosterdesk/lib/clock"
	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/version"
)

// DefaultBaseURL is the employee API root used when none is configured.
const DefaultBaseURL = "http://localhost:7777/api/v1/employee"

const (
	defaultTimeout        = 15 * time.Second
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 500 * time.Millisecond
)

// Options tunes a Client. The zero value is usable.
type Options struct {
	// HTTPClient performs requests. Nil means a fresh http.Client with
	// no client-level timeout; per-request deadlines come from Timeout.
	HTTPClient *http.Client

	// Timeout bounds each individual request attempt. Zero means 15s;
	// negative disables the per-attempt deadline.
	Timeout time.Duration

	// MaxAttempts is how many times an idempotent call (list, delete)
	// is tried before giving up on a transient failure. Zero means 3;
	// 1 disables retry. Create is always tried exactly once.
	MaxAttempts int

	// InitialBackoff is the wait before the second attempt. Each later
	// attempt waits twice as long as the previous one. Zero means
	// 500ms.
	InitialBackoff time.Duration

	// Clock drives backoff waits. Nil means clock.Real().
	Clock clock.Clock

	// Logger receives one record per request. Nil discards.
	Logger *slog.Logger

	// UserAgent is sent with every request. Empty means
	// "rosterdesk/<version>".
	UserAgent string
}

// Client talks to the employee API. It holds no session state: every
// call takes the bearer credential explicitly, and no call mutates
// anything the caller owns. Safe for concurrent use.
type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	timeout        time.Duration
	maxAttempts    int
	initialBackoff time.Duration
	clock          clock.Clock
	logger         *slog.Logger
	userAgent      string
}

// New creates a Client rooted at baseURL (for example
// "http://localhost:7777/api/v1/employee"). Operation paths are
// appended to it.
func New(baseURL string, options Options) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing API base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("API base URL %q must use http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("API base URL %q has no host", baseURL)
	}

	client := &Client{
		baseURL:        parsed,
		httpClient:     options.HTTPClient,
		timeout:        options.Timeout,
		maxAttempts:    options.MaxAttempts,
		initialBackoff: options.InitialBackoff,
		clock:          options.Clock,
		logger:         options.Logger,
		userAgent:      options.UserAgent,
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	if client.timeout == 0 {
		client.timeout = defaultTimeout
	}
	if client.maxAttempts <= 0 {
		client.maxAttempts = defaultMaxAttempts
	}
	if client.initialBackoff <= 0 {
		client.initialBackoff = defaultInitialBackoff
	}
	if client.clock == nil {
		client.clock = clock.Real()
	}
	if client.logger == nil {
		client.logger = slog.New(slog.DiscardHandler)
	}
	if client.userAgent == "" {
		client.userAgent = "rosterdesk/" + version.Short()
	}
	return client, nil
}

// BaseURL returns the API root this client was configured with.
func (client *Client) BaseURL() string {
	return client.baseURL.String()
}

// ListEmployees fetches the whole roster (GET /getAllEmployee). The
// order of the returned slice is the server's.
func (client *Client) ListEmployees(ctx context.Context, credential string) ([]employee.Employee, error) {
	var employees []employee.Employee
	err := client.retry(ctx, "list", func(attempt int) error {
		result, err := client.send(ctx, request{
			operation:  "list",
			method:     http.MethodGet,
			path:       "/getAllEmployee",
			credential: credential,
			attempt:    attempt,
		})
		if err != nil {
			return err
		}
		decoded, err := interpret("list", result)
		if err != nil {
			return err
		}
		employees, err = decodeEmployees(decoded)
		if err != nil {
			return &Error{
				Operation: "list",
				Kind:      KindInternal,
				Status:    result.status,
				Message:   "undecodable roster",
				RequestID: result.requestID,
				Err:       err,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// Result is the server's verdict on a create call.
type Result struct {
	Success bool
	Message string
}

// CreateEmployee submits a new record (POST /createEmployee, multipart
// form). A server-side rejection (success:false, or a 4xx carrying a
// message) is returned as a Result with Success false, not as an error;
// errors mean the verdict is unknown or the call was refused before the
// server considered it. Create is never retried.
func (client *Client) CreateEmployee(ctx context.Context, draft NewEmployee, credential string) (Result, error) {
	body, contentType, err := encodeMultipart(draft)
	if err != nil {
		return Result{}, &Error{Operation: "create", Kind: KindInternal, Message: "encoding form", Err: err}
	}

	result, err := client.send(ctx, request{
		operation:   "create",
		method:      http.MethodPost,
		path:        "/createEmployee",
		credential:  credential,
		body:        body,
		contentType: contentType,
		attempt:     1,
	})
	if err != nil {
		return Result{}, err
	}

	decoded, err := interpret("create", result)
	var apiError *Error
	if errors.As(err, &apiError) && apiError.Kind == KindRejection {
		return Result{Success: false, Message: apiError.Message}, nil
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Success: true, Message: decoded.Message}, nil
}

// DeleteEmployee removes one record (DELETE /deleteEmployee/{id}).
// success:false from the server is a KindRejection error carrying the
// server's message. A 404 on a retry, after an attempt that got no
// usable answer, counts as success.
func (client *Client) DeleteEmployee(ctx context.Context, id string, credential string) error {
	if id == "" {
		return &Error{Operation: "delete", Kind: KindInternal, Message: "empty employee id"}
	}
	return client.retry(ctx, "delete", func(attempt int) error {
		result, err := client.send(ctx, request{
			operation:  "delete",
			method:     http.MethodDelete,
			path:       "/deleteEmployee/" + url.PathEscape(id),
			credential: credential,
			attempt:    attempt,
			employeeID: id,
		})
		if err != nil {
			return err
		}
		_, err = interpret("delete", result)
		if attempt > 1 && isNotFound(err) {
			// An earlier attempt may have deleted the record before its
			// response was lost.
			client.logger.Info("employee already gone on retried delete", "employee_id", id, "attempt", attempt)
			return nil
		}
		return err
	})
}

func isNotFound(err error) bool {
	var apiError *Error
	return errors.As(err, &apiError) && apiError.Kind == KindRejection && apiError.Status == http.StatusNotFound
}

// request describes one HTTP attempt.
type request struct {
	operation   string
	method      string
	path        string
	credential  string
	body        []byte
	contentType string
	attempt     int
	employeeID  string
}

// send performs one attempt and returns the raw exchange. Only
// failures that produced no response are returned as errors here;
// status interpretation is the caller's.
func (client *Client) send(ctx context.Context, call request) (exchange, error) {
	if call.credential == "" {
		return exchange{}, &Error{
			Operation: call.operation,
			Kind:      KindAuth,
			Message:   "not signed in",
			Err:       ErrMissingCredential,
		}
	}

	requestID := uuid.NewString()
	attemptContext := ctx
	if client.timeout > 0 {
		var cancel context.CancelFunc
		attemptContext, cancel = context.WithTimeout(ctx, client.timeout)
		defer cancel()
	}

	var body io.Reader
	if call.body != nil {
		body = bytes.NewReader(call.body)
	}
	httpRequest, err := http.NewRequestWithContext(attemptContext, call.method, client.baseURL.String()+call.path, body)
	if err != nil {
		return exchange{}, &Error{Operation: call.operation, Kind: KindInternal, Message: "building request", RequestID: requestID, Err: err}
	}
	httpRequest.Header.Set("Authorization", "Bearer "+call.credential)
	httpRequest.Header.Set("X-Request-ID", requestID)
	httpRequest.Header.Set("Accept", "application/json")
	httpRequest.Header.Set("User-Agent", client.userAgent)
	if call.contentType != "" {
		httpRequest.Header.Set("Content-Type", call.contentType)
	}

	logger := client.logger.With(
		"operation", call.operation,
		"request_id", requestID,
		"attempt", call.attempt,
	)
	if call.employeeID != "" {
		logger = logger.With("employee_id", call.employeeID)
	}

	started := client.clock.Now()
	response, err := client.httpClient.Do(httpRequest)
	if err != nil {
		logger.Warn("employee API request failed", "error", err)
		return exchange{}, &Error{
			Operation: call.operation,
			Kind:      KindNetwork,
			Message:   "no response from server",
			RequestID: requestID,
			Err:       err,
		}
	}
	defer response.Body.Close()

	data, err := readBody(response.Body)
	if err != nil {
		logger.Warn("reading employee API response failed", "status", response.StatusCode, "error", err)
		return exchange{}, &Error{
			Operation: call.operation,
			Kind:      KindNetwork,
			Status:    response.StatusCode,
			Message:   "response interrupted",
			RequestID: requestID,
			Err:       err,
		}
	}

	logger.Debug("employee API request completed",
		"status", response.StatusCode,
		"bytes", len(data),
		"duration", client.clock.Now().Sub(started),
	)
	return exchange{status: response.StatusCode, body: data, requestID: requestID}, nil
}
