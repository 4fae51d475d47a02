// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the sysinfo
// command.
//
// Configuration is loaded from a single file specified by either the
// SYSINFO_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. A command run without either uses [Default].
//
// Variable expansion is performed on string fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Log, Output, Input, Pack
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every invalid field at once
//
// This package depends on no other sysinfo packages.
package config
