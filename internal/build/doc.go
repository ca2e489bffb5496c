// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package build builds library bitcode from [library.Recipe]s.
//
// Each recipe is rendered into a POSIX shell script that is written to a
// transient file in the workspace root, run, and removed again whatever the
// outcome. Once the script succeeded, the bitcode artifact is copied into the
// workspace root.
package build
