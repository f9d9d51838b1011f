// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
)

// ErrNoSession is returned by Load when no session file exists.
var ErrNoSession = errors.New("no rosterdesk session")

// Session is the stored operator credential.
type Session struct {
	// Token is the bearer credential sent with every API request.
	Token string `json:"token"`

	// BaseURL is the API root the token was issued for. Informational:
	// commands use the configured base URL.
	BaseURL string `json:"base_url,omitempty"`

	// SavedAt is when login wrote the file.
	SavedAt time.Time `json:"saved_at,omitzero"`
}

// Path returns where the session lives: ROSTERDESK_SESSION_FILE if set,
// otherwise $XDG_CONFIG_HOME/rosterdesk/session.json, with
// XDG_CONFIG_HOME defaulting to ~/.config.
func Path() string {
	if path := os.Getenv("ROSTERDESK_SESSION_FILE"); path != "" {
		return path
	}
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "rosterdesk-session.json")
		}
		configDirectory = filepath.Join(home, ".config")
	}
	return filepath.Join(configDirectory, "rosterdesk", "session.json")
}

// Load reads the session at path. A missing file is ErrNoSession.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNoSession, path)
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var session Session
	if err := json.Unmarshal(jsonc.ToJSON(data), &session); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	session.Token = strings.TrimSpace(session.Token)
	if session.Token == "" {
		return nil, fmt.Errorf("session file %s has no token", path)
	}
	return &session, nil
}

// Save writes the session to path with mode 0600, creating the
// directory with mode 0700. The write goes through a temporary file so
// a crash never leaves a truncated session behind.
func Save(session *Session, path string) error {
	if strings.TrimSpace(session.Token) == "" {
		return errors.New("refusing to save a session without a token")
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	temporary, err := os.CreateTemp(directory, ".session-*.json")
	if err != nil {
		return fmt.Errorf("creating session file in %s: %w", directory, err)
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath)

	if err := temporary.Chmod(0o600); err != nil {
		temporary.Close()
		return fmt.Errorf("restricting session file: %w", err)
	}
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("installing session file %s: %w", path, err)
	}
	return nil
}

// Clear removes the session at path. Clearing a missing session is not
// an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file %s: %w", path, err)
	}
	return nil
}
