// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/libspec/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsolutePath(t *testing.T) {
	_, err := sys.AbsolutePath("")
	require.ErrorIs(t, err, sys.ErrEmptyPath)

	path, err := sys.AbsolutePath("testdata")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "testdata", filepath.Base(path))
}

func TestValidatePaths(t *testing.T) {
	dir := t.TempDir()
	file := sys.WriteFile(t, dir, "file", "")

	require.NoError(t, sys.ValidateFilePath(file))
	require.ErrorIs(t, sys.ValidateFilePath(dir), sys.ErrNotRegularFile)
	require.ErrorIs(t, sys.ValidateFilePath(dir+"/missing"), fs.ErrNotExist)

	require.NoError(t, sys.ValidateDirPath(dir))
	require.ErrorIs(t, sys.ValidateDirPath(file), sys.ErrNotDirectory)
	require.ErrorIs(t, sys.ValidateDirPath(dir+"/missing"), fs.ErrNotExist)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := sys.WriteFile(t, dir, "libz.so.1.2.11.bc", "BC\xc0\xde")
	dst := filepath.Join(dir, "copy.bc")

	require.NoError(t, sys.CopyFile(dst, src))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "BC\xc0\xde", string(content))

	err = sys.CopyFile(dst, filepath.Join(dir, "missing.bc"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestExecErrorIs(t *testing.T) {
	//nolint:testifylint
	assert.ErrorIs(t, error(&sys.ExecError{}), &sys.ExecError{})
	assert.NotErrorIs(t, assert.AnError, &sys.ExecError{})
}
