// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. Set manually for releases.
	Version = "0.1.0-dev"
)

// Info returns a one-line version string for `rosterdesk version`:
// "0.1.0-dev (abc1234, 2026-03-01T10:00:00Z)".
func Info() string {
	commit, buildTime := GitCommit, BuildTime
	if commit == "unknown" {
		commit, buildTime = embeddedVCS(buildTime)
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, buildTime)
}

// Full returns Info plus the Go version and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number. Used in the User-Agent header.
func Short() string {
	return Version
}

// embeddedVCS reads the revision and commit time the toolchain stamps
// into module builds. Returns "unknown" when absent.
func embeddedVCS(fallbackTime string) (commit, buildTime string) {
	commit, buildTime = "unknown", fallbackTime
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return commit, buildTime
	}
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
			if len(commit) > 7 {
				commit = commit[:7]
			}
		case "vcs.time":
			buildTime = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if dirty && commit != "unknown" {
		commit += "-dirty"
	}
	return commit, buildTime
}
