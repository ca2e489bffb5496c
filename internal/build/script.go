// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import (
	"path/filepath"
	"strings"

	"github.com/aibor/libspec/internal/library"
)

const safeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" + "_-./:=@%+,"

// Quote quotes the given string for use as a single word in a POSIX shell.
//
// Strings consisting of safe characters only are returned as is.
func Quote(word string) string {
	if word != "" && strings.Trim(word, safeChars) == "" {
		return word
	}

	return singleQuote(word)
}

func singleQuote(word string) string {
	return "'" + strings.ReplaceAll(word, "'", `'\''`) + "'"
}

// quoteCommand quotes the command word. Unquoted, a word containing "=" would
// be taken as variable assignment by the shell.
func quoteCommand(word string) string {
	if strings.Contains(word, "=") {
		return singleQuote(word)
	}

	return Quote(word)
}

// Script renders the given recipe as POSIX shell script.
//
// All paths are resolved against the given workspace root. In strict mode the
// script exits on the first failing step. Otherwise, like a plain list of
// commands, it carries on with the next step and its exit status is the one
// of the last step. Commands are traced on stderr either way.
func Script(recipe library.Recipe, workspace string, strict bool) string {
	var script strings.Builder

	script.WriteString("#!/bin/sh\n")
	script.WriteString("# Build " + recipe.Library.String() + " bitcode.\n")

	if strict {
		script.WriteString("set -e\n")
	}

	script.WriteString("set -x\n")

	currentDir := ""

	for _, step := range recipe.Steps {
		dir := filepath.Join(workspace, step.Dir)
		if dir != currentDir {
			script.WriteString("cd " + Quote(dir) + "\n")

			currentDir = dir
		}

		words := make([]string, 0, len(step.Env)+len(step.Run))

		for _, key := range step.EnvKeys() {
			words = append(words, key+"="+Quote(step.Env[key]))
		}

		words = append(words, quoteCommand(step.Command()))

		for _, arg := range step.Args() {
			words = append(words, Quote(arg))
		}

		script.WriteString(strings.Join(words, " ") + "\n")
	}

	return script.String()
}
