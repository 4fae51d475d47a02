// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// Exit statuses of the sysinfo binary.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output.
//
// "sysinfo decode --quiet" uses this: an undecodable document is a
// valid outcome reported only through the exit status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitStatus maps an error returned by [Command.Execute] to a process
// exit status and reports whether main should print it.
func ExitStatus(err error) (code int, report bool) {
	if err == nil {
		return ExitSuccess, false
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode(), false
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage, true
	}
	return ExitFailure, true
}
