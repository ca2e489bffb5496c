// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package report_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aibor/libspec/internal/report"
	"github.com/aibor/libspec/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(bitcode string) string {
	return "Printing Symbols available in " + bitcode + ":\n"
}

const separator = "\n\n\n"

type fixture struct {
	dir string
	nm  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	dir := t.TempDir()

	return fixture{
		dir: dir,
		nm:  sys.WriteExecutable(t, dir, "fake-nm", sys.FakeNmScript),
	}
}

// bitcode writes a fake bitcode file that the fake nm dumps as the given
// symbols.
func (f fixture) bitcode(t *testing.T, name string, symbols ...string) string {
	t.Helper()

	var content string
	if len(symbols) > 0 {
		content = strings.Join(symbols, "\n") + "\n"
	}

	return sys.WriteFile(t, f.dir, name, content)
}

func TestReporterRun(t *testing.T) {
	t.Run("single match", func(t *testing.T) {
		f := newFixture(t)
		bitcode := f.bitcode(t, "a.bc", "foo", "baz")

		var out bytes.Buffer

		reporter := report.Reporter{Nm: f.nm}
		err := reporter.Run(t.Context(),
			report.NewFunctionSet("foo", "bar"),
			report.Manifest{Bitcode: []string{bitcode}},
			&out,
		)
		require.NoError(t, err)

		assert.Equal(t, header(bitcode)+"foo\n"+separator, out.String())
		assert.FileExists(t, filepath.Join(f.dir, "a_symbols"), "dump is kept")
	})

	t.Run("manifest order", func(t *testing.T) {
		f := newFixture(t)
		libz := f.bitcode(t, "libz.bc", "inflate", "deflate", "crc32")
		libc := f.bitcode(t, "libc.bc", "memcpy", "malloc", "memcpy")
		empty := f.bitcode(t, "empty.bc")

		var out bytes.Buffer

		reporter := report.Reporter{Nm: f.nm}
		err := reporter.Run(t.Context(),
			report.NewFunctionSet("crc32", "memcpy", "inflate", "printf"),
			report.Manifest{Bitcode: []string{libz, empty, libc}},
			&out,
		)
		require.NoError(t, err)

		expected := header(libz) + "inflate\ncrc32\n" + separator +
			header(empty) + separator +
			header(libc) + "memcpy\n" + separator

		assert.Equal(t, expected, out.String())
		assert.Equal(t, 3, strings.Count(out.String(), "Printing Symbols"))
	})

	t.Run("idempotent", func(t *testing.T) {
		f := newFixture(t)
		bitcode := f.bitcode(t, "a.bc", "foo", "bar", "baz")
		functions := report.NewFunctionSet("baz", "foo")
		manifest := report.Manifest{Bitcode: []string{bitcode, bitcode}}

		var first, second bytes.Buffer

		reporter := report.Reporter{Nm: f.nm}
		require.NoError(t, reporter.Run(t.Context(), functions, manifest, &first))
		require.NoError(t, reporter.Run(t.Context(), functions, manifest, &second))

		assert.Equal(t, first.String(), second.String())
	})

	t.Run("remove dumps", func(t *testing.T) {
		f := newFixture(t)
		bitcode := f.bitcode(t, "a.bc", "foo")

		var out bytes.Buffer

		reporter := report.Reporter{Nm: f.nm, RemoveDumps: true}
		err := reporter.Run(t.Context(),
			report.NewFunctionSet("foo"),
			report.Manifest{Bitcode: []string{bitcode}},
			&out,
		)
		require.NoError(t, err)

		assert.Equal(t, header(bitcode)+"foo\n"+separator, out.String())
		assert.NoFileExists(t, filepath.Join(f.dir, "a_symbols"))
	})

	t.Run("unresolved", func(t *testing.T) {
		f := newFixture(t)
		bitcode := f.bitcode(t, "a.bc", "foo")

		var out bytes.Buffer

		reporter := report.Reporter{Nm: f.nm, Unresolved: true}
		err := reporter.Run(t.Context(),
			report.NewFunctionSet("zap", "foo", "bar"),
			report.Manifest{Bitcode: []string{bitcode}},
			&out,
		)
		require.NoError(t, err)

		expected := header(bitcode) + "foo\n" + separator +
			"Functions without definition:\nbar\nzap\n"
		assert.Equal(t, expected, out.String())
	})

	t.Run("dump fails", func(t *testing.T) {
		f := newFixture(t)
		missing := filepath.Join(f.dir, "missing.bc")
		bitcode := f.bitcode(t, "a.bc", "foo")

		var out bytes.Buffer

		reporter := report.Reporter{Nm: f.nm}
		err := reporter.Run(t.Context(),
			report.NewFunctionSet("foo"),
			report.Manifest{Bitcode: []string{missing, bitcode}},
			&out,
		)
		require.ErrorIs(t, err, &sys.ExecError{})
		assert.Empty(t, out.String())
	})

	t.Run("dump fails keep going", func(t *testing.T) {
		f := newFixture(t)
		missing := filepath.Join(f.dir, "missing.bc")
		bitcode := f.bitcode(t, "a.bc", "foo")

		var out bytes.Buffer

		reporter := report.Reporter{Nm: f.nm, KeepGoing: true}
		err := reporter.Run(t.Context(),
			report.NewFunctionSet("foo"),
			report.Manifest{Bitcode: []string{missing, bitcode}},
			&out,
		)
		require.NoError(t, err)

		expected := header(missing) + separator +
			header(bitcode) + "foo\n" + separator
		assert.Equal(t, expected, out.String())
	})

	t.Run("tool missing", func(t *testing.T) {
		f := newFixture(t)
		bitcode := f.bitcode(t, "a.bc", "foo")

		reporter := report.Reporter{Nm: filepath.Join(f.dir, "nonexistent")}
		err := reporter.Run(t.Context(),
			report.NewFunctionSet("foo"),
			report.Manifest{Bitcode: []string{bitcode}},
			&bytes.Buffer{},
		)

		var execErr *sys.ExecError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, -1, execErr.ExitCode())
	})
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestReporterRunWriteError(t *testing.T) {
	f := newFixture(t)
	bitcode := f.bitcode(t, "a.bc", "foo")

	reporter := report.Reporter{Nm: f.nm}
	err := reporter.Run(t.Context(),
		report.NewFunctionSet("foo"),
		report.Manifest{Bitcode: []string{bitcode}},
		failingWriter{},
	)
	require.ErrorIs(t, err, errWrite)
}
