// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"slices"
)

// DefaultNm is the symbol dump tool used if none is given.
const DefaultNm = "llvm-nm-10"

// NmArgs are passed to the symbol dump tool before the file name. They make it
// print the names of defined symbols only, one per line.
var NmArgs = []string{"--just-symbol-name", "--defined-only"}

// Nm writes the names of all symbols defined in the given bitcode or object
// file to the given writer, one per line.
//
// It invokes the given tool, or [DefaultNm] if empty, which is expected to be
// compatible with llvm-nm. It returns an [ExecError] in case the tool is not
// available or it returned with a non-zero exit code.
func Nm(ctx context.Context, tool, path string, outW io.Writer) error {
	if tool == "" {
		tool = DefaultNm
	}

	var stderrBuf bytes.Buffer

	args := append(slices.Clone(NmArgs), path)

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdout = outW
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if err != nil {
		return &ExecError{
			Name:   tool,
			Err:    err,
			Stderr: stderrBuf.String(),
		}
	}

	return nil
}

// ReadLines reads all lines from the given reader with line endings stripped.
func ReadLines(reader io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	err := scanner.Err()
	if err != nil {
		return lines, fmt.Errorf("scan: %w", err)
	}

	return lines, nil
}
