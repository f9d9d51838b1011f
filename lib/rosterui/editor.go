// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoEditor is reported when no editor program can be found.
var ErrNoEditor = errors.New("no employee editor installed")

// Editor edits one employee outside the roster view. The returned
// command must eventually produce an editorFinishedMsg; the roster is
// re-fetched when it reports success.
type Editor interface {
	Edit(employeeID string) tea.Cmd
}

// PluginEditor runs an external program with the employee id as its
// only argument, suspending the TUI while it owns the terminal.
//
// The program receives the caller's environment plus:
//
//   - ROSTERDESK_PLUGIN=1
//   - ROSTERDESK_API_BASE_URL: the API root the roster was loaded from
//   - ROSTERDESK_SESSION_FILE: where the operator credential is stored
//
// Variables already present in the environment are left alone.
type PluginEditor struct {
	// Program is a path, or a bare name looked up next to the running
	// executable and then on PATH.
	Program string

	BaseURL     string
	SessionFile string

	// executable and lookPath default to os.Executable and
	// exec.LookPath; tests replace them.
	executable func() (string, error)
	lookPath   func(string) (string, error)
}

// NewPluginEditor returns an editor running program.
func NewPluginEditor(program, baseURL, sessionFile string) *PluginEditor {
	return &PluginEditor{
		Program:     program,
		BaseURL:     baseURL,
		SessionFile: sessionFile,
		executable:  os.Executable,
		lookPath:    exec.LookPath,
	}
}

// Edit implements Editor.
func (editor *PluginEditor) Edit(employeeID string) tea.Cmd {
	path, err := editor.find()
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{id: employeeID, err: err}
		}
	}
	command := exec.Command(path, employeeID)
	command.Env = editor.environment(os.Environ())
	return tea.ExecProcess(command, func(err error) tea.Msg {
		if err != nil {
			err = fmt.Errorf("%s %s: %w", filepath.Base(path), employeeID, err)
		}
		return editorFinishedMsg{id: employeeID, err: err}
	})
}

// find resolves Program. Paths are used as given; bare names are
// searched next to the executable first, then on PATH.
func (editor *PluginEditor) find() (string, error) {
	if editor.Program == "" {
		return "", ErrNoEditor
	}
	if strings.ContainsRune(editor.Program, filepath.Separator) {
		if !isFile(editor.Program) {
			return "", fmt.Errorf("%w: %s does not exist", ErrNoEditor, editor.Program)
		}
		return editor.Program, nil
	}
	if editor.executable != nil {
		if self, err := editor.executable(); err == nil {
			candidate := filepath.Join(filepath.Dir(self), editor.Program)
			if isFile(candidate) {
				return candidate, nil
			}
		}
	}
	if editor.lookPath != nil {
		if path, err := editor.lookPath(editor.Program); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s not found next to rosterdesk or on PATH", ErrNoEditor, editor.Program)
}

// environment adds the plugin contract variables to base.
func (editor *PluginEditor) environment(base []string) []string {
	present := make(map[string]bool, len(base))
	for _, entry := range base {
		if key, _, found := strings.Cut(entry, "="); found {
			present[key] = true
		}
	}
	environment := append([]string(nil), base...)
	environment = setVariable(environment, "ROSTERDESK_PLUGIN", "1")
	if !present["ROSTERDESK_API_BASE_URL"] && editor.BaseURL != "" {
		environment = append(environment, "ROSTERDESK_API_BASE_URL="+editor.BaseURL)
	}
	if !present["ROSTERDESK_SESSION_FILE"] && editor.SessionFile != "" {
		environment = append(environment, "ROSTERDESK_SESSION_FILE="+editor.SessionFile)
	}
	return environment
}

func setVariable(environment []string, key, value string) []string {
	prefix := key + "="
	for index, entry := range environment {
		if strings.HasPrefix(entry, prefix) {
			environment[index] = prefix + value
			return environment
		}
	}
	return append(environment, prefix+value)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
