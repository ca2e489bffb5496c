// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/aibor/libspec/internal/sys"
)

// FilePath is a [flag.Value] that is resolved to an absolute path on set.
type FilePath string

func (f *FilePath) String() string {
	return string(*f)
}

func (f *FilePath) Set(s string) error {
	path, err := sys.AbsolutePath(s)
	if err != nil {
		return fmt.Errorf("file path: %w", err)
	}

	*f = FilePath(path)

	return nil
}
