// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import (
	"errors"

	"github.com/aibor/libspec/internal/library"
	"github.com/aibor/libspec/internal/sys"
)

var (
	// ErrNoRecipe is returned if there is no recipe for a library.
	ErrNoRecipe = errors.New("no recipe")

	// ErrWorkspaceNotAbsolute is returned if the workspace root is not an
	// absolute path.
	ErrWorkspaceNotAbsolute = errors.New("workspace must be an absolute path")
)

// Error wraps any error that occurred while building a library.
type Error struct {
	Library library.Library
	Err     error
}

// Error implements the [error] interface.
func (e *Error) Error() string {
	return "build " + e.Library.String() + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*Error) Is(other error) bool {
	_, ok := other.(*Error)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code of the failed build script. It is -1 if the
// failure was not caused by the script exiting with a non-zero exit code.
func (e *Error) ExitCode() int {
	var execErr *sys.ExecError
	if errors.As(e.Err, &execErr) {
		return execErr.ExitCode()
	}

	return -1
}
