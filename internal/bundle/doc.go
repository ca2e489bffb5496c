// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bundle packs built bitcode artifacts into a single cpio archive, so
// they can be handed to the specialization pipeline as one file.
package bundle
