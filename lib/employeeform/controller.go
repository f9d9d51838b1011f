// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package employeeform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/employeeapi"
)

var (
	// ErrSubmitInFlight is returned when the surface is Submitting and
	// the requested transition needs it Open.
	ErrSubmitInFlight = errors.New("a submission is already in progress")

	// ErrSurfaceClosed is returned when the surface is Closed and the
	// requested operation needs it Open.
	ErrSurfaceClosed = errors.New("the create form is not open")
)

// State is the creation surface's lifecycle state.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateSubmitting
)

func (state State) String() string {
	switch state {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("State(%d)", int(state))
	}
}

// Level is a notice's severity.
type Level int

const (
	LevelSuccess Level = iota
	LevelFailure
)

func (level Level) String() string {
	if level == LevelFailure {
		return "failure"
	}
	return "success"
}

// Notice is a user-facing notification of a mutation outcome.
type Notice struct {
	Level   Level
	Message string
}

// Notifier receives notices. The terminal UI shows them in the status
// bar; the CLI prints them.
type Notifier interface {
	Notify(notice Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (function NotifierFunc) Notify(notice Notice) { function(notice) }

// Creator performs the create call. *employeeapi.Client implements it.
type Creator interface {
	CreateEmployee(ctx context.Context, draft employeeapi.NewEmployee, credential string) (employeeapi.Result, error)
}

// Deleter performs the delete call. *employeeapi.Client implements it.
type Deleter interface {
	DeleteEmployee(ctx context.Context, id string, credential string) error
}

// RefreshFunc re-fetches the roster after a successful mutation.
type RefreshFunc func(ctx context.Context) error

// Outcome describes how a submit or delete ended.
type Outcome struct {
	// Succeeded is true when the server confirmed the mutation.
	Succeeded bool

	// Message is the text of the notice that was raised.
	Message string

	// Err is the call's error when one occurred (transport, auth,
	// internal, or a delete rejection). Nil for a create rejection,
	// which is a verdict rather than an error.
	Err error

	// RefreshErr is the error from the roster refresh that follows a
	// successful mutation, if it failed.
	RefreshErr error
}

// Controller owns the draft and the creation surface state. Safe for
// concurrent use.
type Controller struct {
	mu       sync.Mutex
	state    State
	draft    Draft
	notifier Notifier
	logger   *slog.Logger
}

// NewController returns a Closed controller with a fresh draft. A nil
// notifier drops notices; a nil logger discards records.
func NewController(notifier Notifier, logger *slog.Logger) *Controller {
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		state:    StateClosed,
		draft:    NewDraft(),
		notifier: notifier,
		logger:   logger,
	}
}

// State returns the surface state.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state
}

// Draft returns a copy of the current draft.
func (controller *Controller) Draft() Draft {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	draft := controller.draft
	draft.Courses = employee.NewCourses(draft.Courses...)
	return draft
}

// Open shows the creation surface. Opening an open surface is a no-op.
// The draft is whatever was left from the last cancel or failure, or a
// fresh one after a successful create.
func (controller *Controller) Open() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	switch controller.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateClosed:
		controller.state = StateOpen
	}
	return nil
}

// Cancel hides the creation surface, keeping the draft. Cancelling a
// closed surface is a no-op; an in-flight submit cannot be cancelled.
func (controller *Controller) Cancel() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	switch controller.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateOpen:
		controller.state = StateClosed
	}
	return nil
}

// Reset discards the draft, restoring defaults.
func (controller *Controller) Reset() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.draft = NewDraft()
}

// Edit applies change to the draft while the surface is Open.
func (controller *Controller) Edit(change func(draft *Draft) error) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	switch controller.state {
	case StateClosed:
		return ErrSurfaceClosed
	case StateSubmitting:
		return ErrSubmitInFlight
	}
	return change(&controller.draft)
}

// SetField assigns a scalar draft field by wire name.
func (controller *Controller) SetField(name string, value string) error {
	return controller.Edit(func(draft *Draft) error {
		return draft.SetField(name, value)
	})
}

// ToggleCourse checks or unchecks a course.
func (controller *Controller) ToggleCourse(course employee.Course, checked bool) error {
	return controller.Edit(func(draft *Draft) error {
		draft.ToggleCourse(course, checked)
		return nil
	})
}

// SetImage replaces the draft's attachment.
func (controller *Controller) SetImage(attachment *Attachment) error {
	return controller.Edit(func(draft *Draft) error {
		draft.SetImage(attachment)
		return nil
	})
}

// LoadImage reads path and attaches it to the draft.
func (controller *Controller) LoadImage(path string) error {
	// Read outside the lock; files can be slow.
	attachment, err := ReadAttachment(path)
	if err != nil {
		return err
	}
	return controller.SetImage(attachment)
}

// BeginSubmit moves Open to Submitting and returns the payload to send.
func (controller *Controller) BeginSubmit() (employeeapi.NewEmployee, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	switch controller.state {
	case StateClosed:
		return employeeapi.NewEmployee{}, ErrSurfaceClosed
	case StateSubmitting:
		return employeeapi.NewEmployee{}, ErrSubmitInFlight
	}
	controller.state = StateSubmitting
	return controller.draft.Payload(), nil
}

// CompleteSubmit applies the create call's outcome. On confirmed
// success the draft is reset, the surface closes and a success notice
// carries the server's message. Otherwise the surface returns to Open
// with the draft intact and a failure notice is raised. The caller
// refreshes the roster when the outcome Succeeded.
//
// Called when the surface is not Submitting, it does nothing and
// returns a zero Outcome.
func (controller *Controller) CompleteSubmit(result employeeapi.Result, err error) Outcome {
	controller.mu.Lock()
	if controller.state != StateSubmitting {
		controller.mu.Unlock()
		return Outcome{}
	}

	var outcome Outcome
	switch {
	case err != nil:
		controller.state = StateOpen
		outcome = Outcome{Message: "Error creating employee: " + describe(err), Err: err}
	case !result.Success:
		controller.state = StateOpen
		message := result.Message
		if message == "" {
			message = "Employee was not created"
		}
		outcome = Outcome{Message: message}
	default:
		controller.state = StateClosed
		controller.draft = NewDraft()
		message := result.Message
		if message == "" {
			message = "Employee created"
		}
		outcome = Outcome{Succeeded: true, Message: message}
	}
	controller.mu.Unlock()

	if outcome.Succeeded {
		controller.logger.Info("employee created", "message", outcome.Message)
		controller.notifier.Notify(Notice{Level: LevelSuccess, Message: outcome.Message})
	} else {
		controller.logger.Warn("employee not created", "message", outcome.Message, "error", outcome.Err)
		controller.notifier.Notify(Notice{Level: LevelFailure, Message: outcome.Message})
	}
	return outcome
}

// Submit runs the whole create flow synchronously: BeginSubmit, the
// create call, CompleteSubmit, and on success exactly one call to
// refresh. The returned error is non-nil only when the surface was not
// Open; call failures are in the Outcome (and were notified).
func (controller *Controller) Submit(ctx context.Context, creator Creator, credential string, refresh RefreshFunc) (Outcome, error) {
	payload, err := controller.BeginSubmit()
	if err != nil {
		return Outcome{}, err
	}
	result, err := creator.CreateEmployee(ctx, payload, credential)
	outcome := controller.CompleteSubmit(result, err)
	if outcome.Succeeded && refresh != nil {
		outcome.RefreshErr = controller.refreshAfter(ctx, "create", refresh)
	}
	return outcome, nil
}

// CompleteDelete reports a delete call's outcome through the notifier.
// The caller refreshes the roster when the outcome Succeeded.
func (controller *Controller) CompleteDelete(id string, err error) Outcome {
	logger := controller.logger.With("employee_id", id)
	if err != nil {
		outcome := Outcome{Message: "Error deleting employee: " + describe(err), Err: err}
		if employeeapi.IsKind(err, employeeapi.KindRejection) {
			outcome.Message = describe(err)
		}
		logger.Warn("employee not deleted", "error", err)
		controller.notifier.Notify(Notice{Level: LevelFailure, Message: outcome.Message})
		return outcome
	}
	outcome := Outcome{Succeeded: true, Message: fmt.Sprintf("Employee %s deleted", id)}
	logger.Info("employee deleted")
	controller.notifier.Notify(Notice{Level: LevelSuccess, Message: outcome.Message})
	return outcome
}

// Delete runs the delete flow synchronously: the delete call, a notice,
// and on success exactly one call to refresh. Deleting does not depend
// on the creation surface's state.
func (controller *Controller) Delete(ctx context.Context, deleter Deleter, id string, credential string, refresh RefreshFunc) Outcome {
	outcome := controller.CompleteDelete(id, deleter.DeleteEmployee(ctx, id, credential))
	if outcome.Succeeded && refresh != nil {
		outcome.RefreshErr = controller.refreshAfter(ctx, "delete", refresh)
	}
	return outcome
}

func (controller *Controller) refreshAfter(ctx context.Context, operation string, refresh RefreshFunc) error {
	err := refresh(ctx)
	if err != nil {
		controller.logger.Warn("roster refresh after "+operation+" failed", "error", err)
	}
	return err
}

// describe turns a call error into notice text: the API's own message
// when it has one.
func describe(err error) string {
	var apiError *employeeapi.Error
	if errors.As(err, &apiError) && apiError.Message != "" {
		return apiError.Message
	}
	return err.Error()
}
