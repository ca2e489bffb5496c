// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// EnvArgs returns arguments from the environment variable with the given
// name.
func EnvArgs(varName string) []string {
	return strings.Fields(os.Getenv(varName))
}

// LocalConfigArgs returns arguments from a local config file.
//
// The file's format is one argument per line. Environment variables may be used
// and are expanded with [os.ExpandEnv].
func LocalConfigArgs(fsys fs.FS, file string) ([]string, error) {
	conf, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read file: %w", err)
	}

	args := []string{}

	expandedConf := os.ExpandEnv(string(conf))
	for line := range strings.SplitSeq(expandedConf, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			args = append(args, line)
		}
	}

	return args, nil
}

// MergedArgs returns the given command line arguments with the arguments from
// the local config file and the environment variable inserted after the
// program name. Command line arguments come last, so they take precedence.
func MergedArgs(args []string, varName string, fsys fs.FS, file string) ([]string, error) {
	if len(args) == 0 {
		return args, nil
	}

	fileArgs, err := LocalConfigArgs(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("local config args: %w", err)
	}

	envArgs := EnvArgs(varName)

	merged := make([]string, 0, len(args)+len(fileArgs)+len(envArgs))
	merged = append(merged, args[0])
	merged = append(merged, fileArgs...)
	merged = append(merged, envArgs...)
	merged = append(merged, args[1:]...)

	return merged, nil
}
