// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// AbsolutePath returns the absolute path as resolved by [filepath.Abs].
//
// It returns [ErrEmptyPath] if the given path is empty.
func AbsolutePath(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}

	return path, nil
}

// ValidateFilePath checks that the given path exists and is a regular file.
func ValidateFilePath(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !stat.Mode().IsRegular() {
		return ErrNotRegularFile
	}

	return nil
}

// ValidateDirPath checks that the given path exists and is a directory.
func ValidateDirPath(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !stat.IsDir() {
		return ErrNotDirectory
	}

	return nil
}

// CopyFile copies the regular file src to dst. An existing dst is truncated.
func CopyFile(dst, src string) error {
	err := ValidateFilePath(src)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	_, err = io.Copy(dstFile, srcFile)
	if err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("copy: %w", err)
	}

	err = dstFile.Close()
	if err != nil {
		return fmt.Errorf("close destination: %w", err)
	}

	return nil
}
