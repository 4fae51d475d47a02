// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build version information for the sysinfo
// binary.
//
// Values are injected at build time via -ldflags. When a binary is
// built without them (go install, go run), [Info] falls back to the
// VCS stamp the Go toolchain embeds in the build info.
package version
