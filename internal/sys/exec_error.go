// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"errors"
	"os/exec"
	"strings"
)

// ExecError is returned if an external tool could not be run or exited with a
// non-zero exit code.
type ExecError struct {
	Name   string
	Err    error
	Stderr string
}

// Error implements the [error] interface.
func (e *ExecError) Error() string {
	msg := e.Name + ": " + e.Err.Error()

	stderr := strings.TrimSpace(e.Stderr)
	if stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*ExecError) Is(other error) bool {
	_, ok := other.(*ExecError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ExecError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code of the process. It returns -1 if the process
// did not exit on its own, e.g. because it was not found or was killed.
func (e *ExecError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}
