// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/sysinfo/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info returns a formatted version string suitable for --version output.
func Info() string {
	commit, dirty, buildTime := stamp()
	suffix := ""
	if dirty {
		suffix = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, commit, suffix, buildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// stamp returns the ldflags values, filling any left at "unknown"
// from the toolchain's vcs.* build settings.
func stamp() (commit string, dirty bool, buildTime string) {
	commit, dirty, buildTime = GitCommit, GitDirty == "true", BuildTime
	if commit != "unknown" && buildTime != "unknown" {
		return commit, dirty, buildTime
	}

	info, ok := readBuildInfo()
	if !ok {
		return commit, dirty, buildTime
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if commit == "unknown" && setting.Value != "" {
				commit = setting.Value
				if len(commit) > 12 {
					commit = commit[:12]
				}
				dirty = dirty || gitDirtyFromBuildInfo(info)
			}
		case "vcs.time":
			if buildTime == "unknown" && setting.Value != "" {
				buildTime = setting.Value
			}
		}
	}
	return commit, dirty, buildTime
}

func gitDirtyFromBuildInfo(info *debug.BuildInfo) bool {
	for _, setting := range info.Settings {
		if setting.Key == "vcs.modified" {
			return setting.Value == "true"
		}
	}
	return false
}
