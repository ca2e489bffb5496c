// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aibor/libspec/internal/sys"
	"golang.org/x/sync/errgroup"
)

// runner runs a single script with the given shell.
type runner struct {
	Shell  string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
	// Optional sink receiving stdout and stderr lines interleaved.
	Log io.Writer
	// Time the output pipes are drained after cancellation before they are
	// closed. [sys.TerminateDelay] if zero.
	DrainDelay time.Duration
}

func (r *runner) drainDelay() time.Duration {
	if r.DrainDelay == 0 {
		return sys.TerminateDelay
	}

	return r.DrainDelay
}

// Run runs the script at the given path and waits for it to finish.
//
// Stdout and stderr of the script are copied line by line concurrently. It
// returns a [sys.ExecError] if the script could not be started or returned
// with a non-zero exit code.
func (r *runner) Run(ctx context.Context, path string) error {
	cmd := sys.GroupCommand(ctx, r.Shell, path)
	cmd.Dir = r.Dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	// Children that left the process group may keep the pipes open after
	// the group is terminated. Close them after the delay, so the drainers
	// do not block forever.
	drained := make(chan struct{})
	terminate := cmd.Cancel
	cmd.Cancel = func() error {
		go closeAfter(r.drainDelay(), drained, stdout, stderr)
		return terminate()
	}

	slog.Debug("Run build script", slog.String("command", cmd.String()))

	err = cmd.Start()
	if err != nil {
		close(drained)
		return &sys.ExecError{Name: r.Shell, Err: err}
	}

	stdoutW, stderrW := r.Stdout, r.Stderr

	if r.Log != nil {
		stdoutW = io.MultiWriter(stdoutW, r.Log)
		stderrW = io.MultiWriter(stderrW, r.Log)
	}

	var (
		copyGroup errgroup.Group
		writeMu   sync.Mutex
	)

	copyGroup.Go(func() error {
		return copyLines(stdoutW, stdout, &writeMu)
	})
	copyGroup.Go(func() error {
		return copyLines(stderrW, stderr, &writeMu)
	})

	// Pipes must be read completely before waiting for the command.
	copyErr := copyGroup.Wait()
	close(drained)

	err = cmd.Wait()
	if err != nil {
		return &sys.ExecError{Name: r.Shell, Err: err}
	}

	if copyErr != nil {
		return fmt.Errorf("output: %w", copyErr)
	}

	return nil
}

// closeAfter closes the given pipes once the delay has passed, unless done is
// closed before.
func closeAfter(delay time.Duration, done <-chan struct{}, pipes ...io.Closer) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-done:
		return
	case <-timer.C:
	}

	slog.Warn("Output still open after termination, closing pipes",
		slog.Duration("delay", delay))

	for _, pipe := range pipes {
		_ = pipe.Close()
	}
}

// copyLines copies src to dst line by line. Each line is written while holding
// the given lock, so concurrent copies sharing the lock and destinations do
// not interleave within lines.
func copyLines(dst io.Writer, src io.Reader, lock sync.Locker) error {
	reader := bufio.NewReader(src)

	for {
		line, readErr := reader.ReadBytes('\n')
		if len(line) > 0 {
			lock.Lock()
			_, err := dst.Write(line)
			lock.Unlock()

			if err != nil {
				// Keep draining, so the child does not block on a full pipe.
				_, _ = io.Copy(io.Discard, reader)
				return fmt.Errorf("write: %w", err)
			}
		}

		if errors.Is(readErr, io.EOF) {
			return nil
		}

		if readErr != nil {
			return fmt.Errorf("read: %w", readErr)
		}
	}
}
