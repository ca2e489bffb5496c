// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aibor/libspec/internal/build"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type argsParser interface {
	ParseArgs(args []string) error
}

// parseArgs merges the given command line arguments with the ones from the
// environment and local config file and parses them, skipping the program
// name.
func parseArgs(parser argsParser, args []string, varName, localConfigFile string) error {
	args, err := MergedArgs(args, varName, os.DirFS("."), localConfigFile)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		args = args[1:]
	}

	err = parser.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("parse args: %w", err)
	}

	return nil
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested and [ErrNothingToDo] if the
	// arguments do not ask for any action. So exit without error in these
	// cases.
	if errors.Is(err, ErrHelp) || errors.Is(err, ErrNothingToDo) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error) int {
	exitCode := -1

	// Propagate the exit code of a failed build script.
	var buildErr *build.Error
	if errors.As(err, &buildErr) {
		if code := buildErr.ExitCode(); code > 0 {
			exitCode = code
		}
	}

	slog.Error(err.Error())

	return exitCode
}
