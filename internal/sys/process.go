// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// TerminateDelay is the time a process group is given to terminate after it
// has been sent SIGTERM, before the leader is killed.
const TerminateDelay = 10 * time.Second

// GroupCommand returns an [exec.Cmd] that runs in its own process group.
//
// Build tools like make spawn lots of children. Once the context is done, the
// whole group is sent SIGTERM, not only the direct child.
func GroupCommand(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return TerminateGroup(cmd.Process.Pid)
	}
	cmd.WaitDelay = TerminateDelay

	return cmd
}

// TerminateGroup sends SIGTERM to the process group led by the given pid.
//
// A group that is already gone is not considered an error.
func TerminateGroup(pid int) error {
	err := unix.Kill(-pid, unix.SIGTERM)
	if err != nil && !errors.Is(err, unix.ESRCH) {
		return err //nolint:wrapcheck
	}

	return nil
}
