// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log/slog"
)

// setupLogging sets the default logger for the named command.
//
// Only warnings and errors are logged unless debug is set. Records carry the
// command name, as both commands may log into the same build output.
func setupLogging(writer io.Writer, name string, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		AddSource: debug,
		Level:     level,
	})

	slog.SetDefault(slog.New(handler).With(slog.String("command", name)))
}
