// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package library defines the closed set of system libraries that can be
// compiled into LLVM bitcode and the recipes describing how to build each of
// them.
//
// A [Recipe] is an ordered list of structured [Step]s. Each step is an
// executable with its arguments and a working directory relative to the
// workspace root, so no shell string interpolation is involved.
package library
