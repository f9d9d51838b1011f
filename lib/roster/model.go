// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import (
	"context"
	"slices"
	"sync"

	"github.com/rosterdesk/rosterdesk/lib/employee"
)

// Lister fetches the whole roster. *employeeapi.Client implements it.
type Lister interface {
	ListEmployees(ctx context.Context, credential string) ([]employee.Employee, error)
}

// Ticket identifies one in-flight fetch. Tickets are issued in
// increasing order; a larger ticket is a newer request.
type Ticket uint64

// Model is the list view model. Safe for concurrent use: every method
// takes the model's lock, and a refresh swaps the roster in one step so
// no observer sees a partial update.
type Model struct {
	mu sync.Mutex

	employees []employee.Employee
	loaded    bool
	keyword   string
	sort      Sort

	// issued is the newest ticket handed out; zero before the first.
	issued Ticket

	// lastError is the outcome of the newest completed fetch when it
	// failed; nil after a successful one.
	lastError error
}

// New returns an empty model sorted by name ascending.
func New() *Model {
	return &Model{sort: DefaultSort}
}

// Refresh fetches the roster through lister and applies it. On failure
// the roster is left unchanged and the error is recorded and returned.
// If a newer fetch was started while this one was in flight, this
// one's response is discarded (its error is still returned).
func (model *Model) Refresh(ctx context.Context, lister Lister, credential string) error {
	ticket := model.BeginRefresh()
	employees, err := lister.ListEmployees(ctx, credential)
	model.CompleteRefresh(ticket, employees, err)
	return err
}

// BeginRefresh issues the ticket for a fetch about to start.
func (model *Model) BeginRefresh() Ticket {
	model.mu.Lock()
	defer model.mu.Unlock()
	model.issued++
	return model.issued
}

// CompleteRefresh applies the outcome of the fetch identified by
// ticket. Returns false, changing nothing, when a newer ticket has been
// issued since. Otherwise a nil err replaces the roster with employees
// and clears the last error; a non-nil err is recorded and the roster
// is kept.
func (model *Model) CompleteRefresh(ticket Ticket, employees []employee.Employee, err error) bool {
	model.mu.Lock()
	defer model.mu.Unlock()

	if ticket != model.issued {
		return false
	}
	if err != nil {
		model.lastError = err
		return true
	}
	model.employees = slices.Clone(employees)
	model.loaded = true
	model.lastError = nil
	return true
}

// SetKeyword replaces the search keyword.
func (model *Model) SetKeyword(keyword string) {
	model.mu.Lock()
	defer model.mu.Unlock()
	model.keyword = keyword
}

// Keyword returns the search keyword.
func (model *Model) Keyword() string {
	model.mu.Lock()
	defer model.mu.Unlock()
	return model.keyword
}

// ToggleSort selects field as the sort key. Selecting the current key
// again flips the direction; selecting a different key keeps the
// direction.
func (model *Model) ToggleSort(field employee.Field) {
	model.mu.Lock()
	defer model.mu.Unlock()
	model.sort = model.sort.Toggle(field)
}

// SetSort replaces the sort key and direction outright.
func (model *Model) SetSort(sort Sort) {
	model.mu.Lock()
	defer model.mu.Unlock()
	model.sort = sort
}

// Sort returns the active sort key and direction.
func (model *Model) Sort() Sort {
	model.mu.Lock()
	defer model.mu.Unlock()
	return model.sort
}

// Project returns the employees to display: those whose names contain
// the keyword, stably ordered by the sort key. The roster is not
// modified.
func (model *Model) Project() []employee.Employee {
	model.mu.Lock()
	employees, keyword, sort := model.employees, model.keyword, model.sort
	model.mu.Unlock()
	// The roster slice is never written after it is installed, so it
	// can be read outside the lock.
	return Project(employees, keyword, sort)
}

// Roster returns a copy of the cached roster in server order.
func (model *Model) Roster() []employee.Employee {
	model.mu.Lock()
	defer model.mu.Unlock()
	return slices.Clone(model.employees)
}

// Len returns the number of cached employees, before filtering.
func (model *Model) Len() int {
	model.mu.Lock()
	defer model.mu.Unlock()
	return len(model.employees)
}

// Loaded reports whether any fetch has succeeded.
func (model *Model) Loaded() bool {
	model.mu.Lock()
	defer model.mu.Unlock()
	return model.loaded
}

// LastError returns the error of the newest completed fetch, or nil if
// it succeeded (or none has completed).
func (model *Model) LastError() error {
	model.mu.Lock()
	defer model.mu.Unlock()
	return model.lastError
}
