// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/employeeapi"
	"github.com/rosterdesk/rosterdesk/lib/employeeform"
	"github.com/rosterdesk/rosterdesk/lib/roster"
)

// refreshRequestMsg asks the model to start a roster fetch. Init sends
// it so the first fetch is issued from Update, where the model can
// record that a fetch is in flight.
type refreshRequestMsg struct{}

// rosterLoadedMsg carries a finished fetch and the ticket it was
// issued under.
type rosterLoadedMsg struct {
	ticket    roster.Ticket
	employees []employee.Employee
	err       error
}

// createResultMsg carries a finished create call.
type createResultMsg struct {
	result employeeapi.Result
	err    error
}

// deleteResultMsg carries a finished delete call.
type deleteResultMsg struct {
	id  string
	err error
}

// editorFinishedMsg is sent when the external editor exits.
type editorFinishedMsg struct {
	id  string
	err error
}

// noticeFadeMsg clears the status-bar notice with the same sequence
// number. A newer notice has a higher number and survives.
type noticeFadeMsg struct {
	sequence int
}

// statusNotice is the transient message shown in the status bar.
type statusNotice struct {
	text     string
	color    lipgloss.Color
	sequence int
	fromLog  bool // Routed from a log record rather than a mutation.
}

// noticeQueue is the employeeform.Notifier the UI's controller reports
// into. The controller notifies synchronously from inside Update, so
// Update drains the queue right after each Complete call.
type noticeQueue struct {
	mu      sync.Mutex
	pending []employeeform.Notice
}

func (queue *noticeQueue) Notify(notice employeeform.Notice) {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	queue.pending = append(queue.pending, notice)
}

func (queue *noticeQueue) drain() []employeeform.Notice {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	notices := queue.pending
	queue.pending = nil
	return notices
}
