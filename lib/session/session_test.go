// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rosterdesk/rosterdesk/lib/testutil"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	saved := &Session{
		Token:   "operator-token",
		BaseURL: "http://localhost:7777/api/v1/employee",
		SavedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
	if err := Save(saved, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Errorf("session file mode = %o, want 600", mode)
	}
	directoryInfo, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Stat directory: %v", err)
	}
	if mode := directoryInfo.Mode().Perm(); mode != 0o700 {
		t.Errorf("session directory mode = %o, want 700", mode)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Token != saved.Token || loaded.BaseURL != saved.BaseURL || !loaded.SavedAt.Equal(saved.SavedAt) {
		t.Errorf("Load = %+v, want %+v", loaded, saved)
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := Save(&Session{Token: "first"}, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(&Session{Token: "second"}, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Token != "second" {
		t.Errorf("Token = %q, want second", loaded.Token)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the session file", len(entries))
	}
}

func TestSaveRequiresToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := Save(&Session{Token: "  "}, path); err == nil {
		t.Error("Save with a blank token should fail")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("nothing should have been written")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("Load = %v, want ErrNoSession", err)
	}
}

func TestLoadAcceptsComments(t *testing.T) {
	path := testutil.WriteFile(t, "session.json", `{
  // issued by the HR admin on 2026-03-01
  "token": "  annotated-token  ",
  "base_url": "http://localhost:7777/api/v1/employee",
}
`)
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Token != "annotated-token" {
		t.Errorf("Token = %q", loaded.Token)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no token", `{"base_url": "http://localhost"}`},
		{"blank token", `{"token": "   "}`},
		{"not json", `token=abc`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := testutil.WriteFile(t, "session.json", test.content)
			if _, err := Load(path); err == nil || errors.Is(err, ErrNoSession) {
				t.Errorf("Load = %v, want a parse or validation error", err)
			}
		})
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := Save(&Session{Token: "token"}, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Clear(path); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load after Clear = %v, want ErrNoSession", err)
	}
	if err := Clear(path); err != nil {
		t.Errorf("second Clear = %v, want nil", err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("ROSTERDESK_SESSION_FILE", "/custom/session.json")
	if got := Path(); got != "/custom/session.json" {
		t.Errorf("Path() = %q with override", got)
	}

	t.Setenv("ROSTERDESK_SESSION_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := Path(); got != "/xdg/rosterdesk/session.json" {
		t.Errorf("Path() = %q with XDG_CONFIG_HOME", got)
	}
}
