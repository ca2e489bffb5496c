// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package report cross-references external function names against the symbols
// defined in a set of bitcode files.
//
// The set of function names and the list of bitcode files are read from JSON
// files produced by other tools of the specialization workflow. For each
// bitcode file, the defined symbols are dumped with llvm-nm and the functions
// the file is responsible for are printed.
package report
