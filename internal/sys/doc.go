// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sys wraps the host system: external tools like the symbol dump
// tool, process groups, and file system paths.
package sys
