// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/employeeapi"
	"github.com/rosterdesk/rosterdesk/lib/employeeapi/apitest"
	"github.com/rosterdesk/rosterdesk/lib/testutil"
)

type recordingSender struct {
	delivered chan logRecordMsg
}

func newRecordingSender() *recordingSender {
	return &recordingSender{delivered: make(chan logRecordMsg, logQueueSize)}
}

func (sender *recordingSender) Send(message tea.Msg) {
	if record, ok := message.(logRecordMsg); ok {
		sender.delivered <- record
	}
}

// next waits for count delivered records.
func (sender *recordingSender) next(t *testing.T, count int) []logRecordMsg {
	t.Helper()
	records := make([]logRecordMsg, 0, count)
	for range count {
		records = append(records, testutil.RequireReceive(t, sender.delivered, 5*time.Second, "waiting for a log record"))
	}
	return records
}

func TestTUILogHandler(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelInfo)
	logger := slog.New(handler)

	logger.Warn("before the program starts")

	sender := newRecordingSender()
	handler.SetProgram(sender)

	logger.Debug("below the level")
	logger.Info("roster loaded", "count", 3)
	logger.With("employee_id", "7").WithGroup("request").Warn("delete failed", "status", 404)
	logger.Error("plain")

	want := []string{
		"roster loaded (count=3)",
		"delete failed (employee_id=7, request.status=404)",
		"plain",
	}
	got := sender.next(t, len(want))
	for index := range want {
		if got[index].Summary != want[index] {
			t.Errorf("summary %d = %q, want %q", index, got[index].Summary, want[index])
		}
	}
	if last := got[len(got)-1]; last.Level != slog.LevelError {
		t.Errorf("level = %v, want ERROR", last.Level)
	}
	select {
	case extra := <-sender.delivered:
		t.Errorf("unexpected record %q", extra.Summary)
	case <-time.After(50 * time.Millisecond):
	}
}

// blockingSender never returns from Send, like a program whose event
// loop is busy.
type blockingSender struct {
	entered chan struct{}
}

func (sender *blockingSender) Send(tea.Msg) {
	sender.entered <- struct{}{}
	select {}
}

func TestTUILogHandlerNeverBlocks(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelInfo)
	sender := &blockingSender{entered: make(chan struct{}, 1)}
	handler.SetProgram(sender)
	logger := slog.New(handler)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range logQueueSize * 2 {
			logger.Warn("still logging")
		}
	}()
	testutil.RequireClosed(t, done, 5*time.Second, "logging blocked on a busy program")
	testutil.RequireReceive(t, sender.entered, 5*time.Second, "first record was not delivered")
}

func TestTUILogHandlerDerivedShareProgram(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelDebug)
	derived := slog.New(handler).With("component", "roster")

	sender := newRecordingSender()
	handler.SetProgram(sender)
	derived.Debug("fetch started")

	if got := sender.next(t, 1); got[0].Summary != "fetch started (component=roster)" {
		t.Errorf("summary = %q", got[0].Summary)
	}
}

// runProgram starts a headless program over model with display
// connected. Every message the event loop takes in is copied to the
// returned channel; finished is closed when Run returns.
func runProgram(t *testing.T, model Model, display *TUILogHandler) (program *tea.Program, seen <-chan tea.Msg, finished <-chan struct{}) {
	t.Helper()
	messages := make(chan tea.Msg, 256)
	program = tea.NewProgram(model,
		tea.WithInput(nil),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
		tea.WithFilter(func(_ tea.Model, message tea.Msg) tea.Msg {
			select {
			case messages <- message:
			default:
			}
			return message
		}),
	)
	display.SetProgram(program)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			t.Errorf("program.Run: %v", err)
		}
	}()
	t.Cleanup(func() {
		program.Kill()
		<-done
	})
	return program, messages, done
}

// awaitSeen reads seen until match accepts a message.
func awaitSeen(t *testing.T, seen <-chan tea.Msg, what string, match func(tea.Msg) bool) {
	t.Helper()
	for {
		message := testutil.RequireReceive(t, seen, 5*time.Second, "event loop stopped before %s", what)
		if match(message) {
			return
		}
	}
}

func TestProgramSurvivesWarningsFromUpdate(t *testing.T) {
	tests := []struct {
		name    string
		seed    []employee.Employee
		prepare func(fake *apitest.Server)
		editor  func(t *testing.T) Editor
		keys    []tea.Msg
		summary string
	}{
		{
			name: "roster fetch failure",
			prepare: func(fake *apitest.Server) {
				fake.FailNext("list", http.StatusServiceUnavailable, `{"success":false,"message":"maintenance"}`)
			},
			summary: "roster fetch failed",
		},
		{
			name: "editor plugin missing",
			seed: []employee.Employee{{ID: "1", Name: "Ann"}},
			editor: func(t *testing.T) Editor {
				return NewPluginEditor(filepath.Join(t.TempDir(), "rosterdesk-edit"), "", "")
			},
			keys:    []tea.Msg{runes("e")},
			summary: "employee editor failed",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fake := apitest.NewServer(t, credential)
			fake.Seed(test.seed...)
			if test.prepare != nil {
				test.prepare(fake)
			}
			client, err := employeeapi.New(fake.URL(), employeeapi.Options{MaxAttempts: 1})
			if err != nil {
				t.Fatalf("employeeapi.New: %v", err)
			}
			display := NewTUILogHandler(slog.LevelWarn)
			options := Options{Logger: slog.New(display)}
			if test.editor != nil {
				options.Editor = test.editor(t)
			}

			program, seen, finished := runProgram(t, New(client, credential, options), display)
			if len(test.keys) > 0 {
				// Messages are handled in order, so keys sent now
				// reach Update after the roster has been applied.
				awaitSeen(t, seen, "the roster loaded", func(message tea.Msg) bool {
					_, ok := message.(rosterLoadedMsg)
					return ok
				})
				for _, key := range test.keys {
					program.Send(key)
				}
			}

			awaitSeen(t, seen, "the warning reached the status bar", func(message tea.Msg) bool {
				record, ok := message.(logRecordMsg)
				return ok && strings.HasPrefix(record.Summary, test.summary)
			})
			program.Quit()
			testutil.RequireClosed(t, finished, 5*time.Second, "program did not quit")
		})
	}
}
