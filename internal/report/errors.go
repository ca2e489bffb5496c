// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package report

import "errors"

var (
	// ErrMissingKey is returned if an input file lacks its recognized key.
	ErrMissingKey = errors.New("missing key")

	// ErrInvalidFormat is returned if the value of a recognized key has an
	// unexpected type.
	ErrInvalidFormat = errors.New("invalid format")
)

// FileError is returned if an input file can not be read or parsed.
type FileError struct {
	Path string
	Err  error
}

// Error implements the [error] interface.
func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*FileError) Is(other error) bool {
	_, ok := other.(*FileError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *FileError) Unwrap() error {
	return e.Err
}
