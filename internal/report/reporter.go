// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aibor/libspec/internal/sys"
)

// Reporter prints which of a set of functions each bitcode file of a manifest
// defines.
type Reporter struct {
	// Symbol dump tool compatible with llvm-nm. [sys.DefaultNm] if empty.
	Nm string
	// Log failing symbol dumps and continue with the next bitcode file.
	KeepGoing bool
	// Remove symbol dump files right after they have been read.
	RemoveDumps bool
	// Print the functions not defined by any bitcode file at the end.
	Unresolved bool
}

// Run prints a section for each bitcode file of the manifest, in manifest
// order, listing the functions of the given set that the bitcode file
// defines.
//
// The symbols of each bitcode file are dumped into a file next to it, see
// [DumpPath]. Matches are printed in the order of the dump with duplicates
// omitted.
func (r *Reporter) Run(
	ctx context.Context,
	functions FunctionSet,
	manifest Manifest,
	out io.Writer,
) error {
	resolved := make(FunctionSet)

	for _, bitcode := range manifest.Bitcode {
		matches, err := r.matches(ctx, bitcode, functions)
		if err != nil {
			if !r.KeepGoing || ctx.Err() != nil {
				return err
			}

			slog.Warn("Failed to dump symbols, continue with next file",
				slog.String("bitcode", bitcode),
				slog.Any("error", err))
		}

		for _, match := range matches {
			resolved[match] = struct{}{}
		}

		err = writeSection(out, bitcode, matches)
		if err != nil {
			return err
		}
	}

	if !r.Unresolved {
		return nil
	}

	var unresolved []string

	for _, name := range functions.Names() {
		if !resolved.Contains(name) {
			unresolved = append(unresolved, name)
		}
	}

	return writeUnresolved(out, unresolved)
}

// matches returns the functions of the given set defined in the given bitcode
// file in dump order.
func (r *Reporter) matches(
	ctx context.Context,
	bitcode string,
	functions FunctionSet,
) ([]string, error) {
	symbols, err := r.symbols(ctx, bitcode)
	if err != nil {
		return nil, err
	}

	var (
		matches []string
		seen    = make(FunctionSet)
	)

	for _, symbol := range symbols {
		if !functions.Contains(symbol) || seen.Contains(symbol) {
			continue
		}

		seen[symbol] = struct{}{}
		matches = append(matches, symbol)
	}

	return matches, nil
}

// symbols dumps the defined symbols of the given bitcode file into its dump
// file and reads them back.
func (r *Reporter) symbols(ctx context.Context, bitcode string) ([]string, error) {
	dumpPath := DumpPath(bitcode)

	dumpFile, err := os.Create(dumpPath)
	if err != nil {
		return nil, fmt.Errorf("create symbol dump: %w", err)
	}
	defer dumpFile.Close()

	if r.RemoveDumps {
		defer removeDump(dumpPath)
	}

	slog.Debug("Dump symbols",
		slog.String("bitcode", bitcode),
		slog.String("dump", dumpPath))

	err = sys.Nm(ctx, r.Nm, bitcode, dumpFile)
	if err != nil {
		return nil, fmt.Errorf("dump symbols of %s: %w", bitcode, err)
	}

	_, err = dumpFile.Seek(0, io.SeekStart)
	if err != nil {
		return nil, fmt.Errorf("rewind symbol dump: %w", err)
	}

	symbols, err := sys.ReadLines(dumpFile)
	if err != nil {
		return nil, fmt.Errorf("read symbol dump %s: %w", dumpPath, err)
	}

	return symbols, nil
}

func removeDump(path string) {
	slog.Debug("Removing symbol dump", slog.String("path", path))

	err := os.Remove(path)
	if err != nil {
		slog.Error(
			"Failed to remove symbol dump",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}

func writeSection(out io.Writer, bitcode string, matches []string) error {
	var section strings.Builder

	section.WriteString("Printing Symbols available in " + bitcode + ":\n")

	for _, match := range matches {
		section.WriteString(match + "\n")
	}

	section.WriteString("\n\n\n")

	_, err := io.WriteString(out, section.String())
	if err != nil {
		return fmt.Errorf("write section: %w", err)
	}

	return nil
}

func writeUnresolved(out io.Writer, names []string) error {
	var section strings.Builder

	section.WriteString("Functions without definition:\n")

	for _, name := range names {
		section.WriteString(name + "\n")
	}

	_, err := io.WriteString(out, section.String())
	if err != nil {
		return fmt.Errorf("write unresolved: %w", err)
	}

	return nil
}
