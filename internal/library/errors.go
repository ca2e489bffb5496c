// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package library

import "errors"

var (
	// ErrUnsupported is returned if a library name is not supported.
	ErrUnsupported = errors.New("not supported")

	// ErrNoLibraries is returned if no library is requested at all.
	ErrNoLibraries = errors.New("no libraries given")

	// ErrNoSteps is returned if a recipe does not have any steps.
	ErrNoSteps = errors.New("recipe has no steps")

	// ErrEmptyCommand is returned if a step has no executable.
	ErrEmptyCommand = errors.New("step has no command")

	// ErrInvalidEnvName is returned if a step's environment variable name is
	// not a valid shell identifier.
	ErrInvalidEnvName = errors.New("invalid environment variable name")

	// ErrNoArtifact is returned if a recipe does not name its artifact.
	ErrNoArtifact = errors.New("recipe has no artifact")

	// ErrPathEscapes is returned if a recipe path points outside of the
	// workspace.
	ErrPathEscapes = errors.New("path escapes workspace")
)

// UnsupportedError is returned for library names that are not in the list of
// supported libraries.
type UnsupportedError struct {
	Name string
}

// Error implements the [error] interface.
func (e *UnsupportedError) Error() string {
	return "Library " + e.Name + " not supported ..."
}

// Is implements the [errors.Is] interface.
func (*UnsupportedError) Is(other error) bool {
	_, ok := other.(*UnsupportedError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (*UnsupportedError) Unwrap() error {
	return ErrUnsupported
}
