// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a log record to the model for the status bar.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// Sender delivers messages into a running program. *tea.Program
// implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// logQueueSize bounds the records waiting for the program. Records
// beyond it are dropped.
const logQueueSize = 64

type senderSlot struct {
	sender Sender
}

// logPipe carries records from Handle to the program on its own
// goroutine. Handle may run inside Update, where a direct
// tea.Program.Send blocks the event loop on itself.
type logPipe struct {
	slot    atomic.Pointer[senderSlot]
	records chan logRecordMsg
	start   sync.Once
}

func (pipe *logPipe) deliver() {
	for record := range pipe.records {
		if slot := pipe.slot.Load(); slot != nil {
			slot.sender.Send(record)
		}
	}
}

// TUILogHandler is a slog.Handler that shows log records in the
// status bar by sending them into the bubbletea program. Records below
// the handler's level are dropped, as are records that arrive before
// SetProgram. Delivery is asynchronous and in order; Handle never
// blocks.
//
// Handlers derived through WithAttrs and WithGroup share the program
// slot, so one SetProgram call reaches all of them.
type TUILogHandler struct {
	level  slog.Leveler
	pipe   *logPipe
	attrs  []slog.Attr
	prefix string // Group prefix for attribute keys, e.g. "request.".
}

// NewTUILogHandler returns a handler for records at or above level.
func NewTUILogHandler(level slog.Leveler) *TUILogHandler {
	return &TUILogHandler{
		level: level,
		pipe:  &logPipe{records: make(chan logRecordMsg, logQueueSize)},
	}
}

// SetProgram connects the handler to a program. Safe to call from any
// goroutine.
func (handler *TUILogHandler) SetProgram(sender Sender) {
	handler.pipe.slot.Store(&senderSlot{sender: sender})
	handler.pipe.start.Do(func() { go handler.pipe.deliver() })
}

func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle sends "message (key=value, ...)" to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	if handler.pipe.slot.Load() == nil {
		return nil
	}

	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, attr.Key+"="+attr.Value.String())
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, handler.prefix+attr.Key+"="+attr.Value.String())
		return true
	})

	summary := record.Message
	if len(attrParts) > 0 {
		summary = fmt.Sprintf("%s (%s)", summary, strings.Join(attrParts, ", "))
	}
	select {
	case handler.pipe.records <- logRecordMsg{Summary: summary, Level: record.Level}:
	default:
	}
	return nil
}

func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	for _, attr := range attrs {
		derived.attrs = append(derived.attrs, slog.Attr{Key: handler.prefix + attr.Key, Value: attr.Value})
	}
	return &derived
}

func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	derived.prefix = handler.prefix + name + "."
	return &derived
}
