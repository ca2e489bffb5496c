// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"os"
	"path/filepath"
	"testing"
)

// FakeNmScript is a stand-in for llvm-nm. It checks the arguments and prints
// the content of the given file, so tests can use plain text files listing
// symbol names as "bitcode".
const FakeNmScript = `#!/bin/sh
[ "$1" = "--just-symbol-name" ] || { echo "unexpected arg: $1" >&2; exit 3; }
[ "$2" = "--defined-only" ] || { echo "unexpected arg: $2" >&2; exit 3; }
exec cat "$3"
`

// WriteExecutable writes a shell script with the given content into dir and
// returns its path.
func WriteExecutable(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	path := filepath.Join(dir, name)

	//nolint:gosec,mnd
	err := os.WriteFile(path, []byte(content), 0o755)
	if err != nil {
		tb.Fatalf("failed to write executable %s: %v", path, err)
	}

	return path
}

// WriteFile writes content to a file in dir and returns its path.
func WriteFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	path := filepath.Join(dir, name)

	//nolint:gosec,mnd
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		tb.Fatalf("failed to write file %s: %v", path, err)
	}

	return path
}
