// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package panel binds the employee API client, the roster view model
// and the form controller to one operator credential. The scriptable
// CLI uses it directly; the terminal UI drives the same parts
// asynchronously from its event loop.
package panel

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/employeeapi"
	"github.com/rosterdesk/rosterdesk/lib/employeeform"
	"github.com/rosterdesk/rosterdesk/lib/roster"
)

// ErrNoCredential is returned by every network operation while the
// panel has no credential. No request is attempted.
var ErrNoCredential = errors.New("not signed in: run `rosterdesk login --token TOKEN` first")

// API is the remote surface the panel needs. *employeeapi.Client
// implements it.
type API interface {
	roster.Lister
	employeeform.Creator
	employeeform.Deleter
}

// Panel is safe for concurrent use.
type Panel struct {
	api    API
	roster *roster.Model
	form   *employeeform.Controller
	logger *slog.Logger

	mu         sync.Mutex
	credential string
}

// New assembles a panel. An empty credential is allowed; network
// operations fail with ErrNoCredential until SetCredential supplies
// one.
func New(api API, credential string, notifier employeeform.Notifier, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Panel{
		api:        api,
		roster:     roster.New(),
		form:       employeeform.NewController(notifier, logger),
		logger:     logger,
		credential: credential,
	}
}

// SetCredential replaces the bearer credential.
func (panel *Panel) SetCredential(credential string) {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	panel.credential = credential
}

// Credential returns the bearer credential, or "".
func (panel *Panel) Credential() string {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	return panel.credential
}

// SignedIn reports whether a credential is present.
func (panel *Panel) SignedIn() bool {
	return panel.Credential() != ""
}

// Roster returns the view model.
func (panel *Panel) Roster() *roster.Model { return panel.roster }

// Form returns the form controller.
func (panel *Panel) Form() *employeeform.Controller { return panel.form }

// Refresh re-fetches the roster.
func (panel *Panel) Refresh(ctx context.Context) error {
	credential := panel.Credential()
	if credential == "" {
		return ErrNoCredential
	}
	if err := panel.roster.Refresh(ctx, panel.api, credential); err != nil {
		panel.logger.Warn("roster refresh failed", "error", err)
		return err
	}
	panel.logger.Debug("roster refreshed", "employees", panel.roster.Len())
	return nil
}

// Submit sends the form's draft. On confirmed creation the roster is
// refreshed once.
func (panel *Panel) Submit(ctx context.Context) (employeeform.Outcome, error) {
	credential := panel.Credential()
	if credential == "" {
		return employeeform.Outcome{}, ErrNoCredential
	}
	return panel.form.Submit(ctx, panel.api, credential, panel.Refresh)
}

// Delete removes one employee. On success the roster is refreshed once.
func (panel *Panel) Delete(ctx context.Context, id string) (employeeform.Outcome, error) {
	credential := panel.Credential()
	if credential == "" {
		return employeeform.Outcome{}, ErrNoCredential
	}
	return panel.form.Delete(ctx, panel.api, id, credential, panel.Refresh), nil
}

// List fetches the roster without applying it. The terminal UI pairs
// it with roster.BeginRefresh and CompleteRefresh so the call can run
// off the event loop.
func (panel *Panel) List(ctx context.Context) ([]employee.Employee, error) {
	credential := panel.Credential()
	if credential == "" {
		return nil, ErrNoCredential
	}
	return panel.api.ListEmployees(ctx, credential)
}

// Create sends payload without touching the form. Pair with
// Form().BeginSubmit and CompleteSubmit.
func (panel *Panel) Create(ctx context.Context, payload employeeapi.NewEmployee) (employeeapi.Result, error) {
	credential := panel.Credential()
	if credential == "" {
		return employeeapi.Result{}, ErrNoCredential
	}
	return panel.api.CreateEmployee(ctx, payload, credential)
}

// Remove deletes one employee without notifying or refreshing. Pair
// with Form().CompleteDelete.
func (panel *Panel) Remove(ctx context.Context, id string) error {
	credential := panel.Credential()
	if credential == "" {
		return ErrNoCredential
	}
	return panel.api.DeleteEmployee(ctx, id, credential)
}

// Projection returns the rows to display.
func (panel *Panel) Projection() []employee.Employee {
	return panel.roster.Project()
}
