// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/aibor/libspec/internal/cmd"
	"golang.org/x/sys/unix"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		unix.SIGINT,
		unix.SIGTERM,
		unix.SIGQUIT,
		unix.SIGHUP,
	)

	cfg := cmd.IO{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	exitCode := cmd.RunFuncResp(ctx, os.Args, cfg)

	cancel()
	os.Exit(exitCode)
}
