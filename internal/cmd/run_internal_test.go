// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"os/exec"
	"testing"

	"github.com/aibor/libspec/internal/build"
	"github.com/aibor/libspec/internal/library"
	"github.com/aibor/libspec/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleParseArgsError(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		expectedExitCode int
	}{
		{
			name: "flag help",
			err:  fmt.Errorf("parse args: %w", &ParseArgsError{err: flag.ErrHelp}),
		},
		{
			name: "nothing to do",
			err:  &ParseArgsError{msg: "no libraries given", err: ErrNothingToDo},
		},
		{
			name:             "parse args error",
			err:              &ParseArgsError{msg: "expected two files"},
			expectedExitCode: -1,
		},
		{
			name:             "any error",
			err:              assert.AnError,
			expectedExitCode: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedExitCode, handleParseArgsError(tt.err))
		})
	}
}

func TestHandleRunError(t *testing.T) {
	// A real exit error is needed for the exit code.
	exitErr := exec.Command("sh", "-c", "exit 42").Run()
	require.Error(t, exitErr)

	tests := []struct {
		name             string
		err              error
		expectedExitCode int
	}{
		{
			name:             "any error",
			err:              assert.AnError,
			expectedExitCode: -1,
		},
		{
			name: "build script exit code",
			err: fmt.Errorf("wrapped: %w", &build.Error{
				Library: library.LibZ,
				Err:     &sys.ExecError{Name: "bash", Err: exitErr},
			}),
			expectedExitCode: 42,
		},
		{
			name: "build error without exit code",
			err: &build.Error{
				Library: library.LibZ,
				Err:     assert.AnError,
			},
			expectedExitCode: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedExitCode, handleRunError(tt.err))
		})
	}
}
