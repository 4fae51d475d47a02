// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command tree framework for the sysinfo binary.
//
// A [Command] owns a lazily built pflag set, optional subcommands, and
// a Run function. [Command.Execute] dispatches on the first positional
// argument, suggests the closest match for misspelled commands and
// flags, and renders structured help. Errors caused by the command
// line itself come back as *[UsageError] so main can exit with status
// 2; [ExitError] carries a status for commands that already reported
// their own failure.
package cli
