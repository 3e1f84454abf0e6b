// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"

	"golang.org/x/sys/unix"
)

// RelayedSignals are forwarded from the supervisor to the running
// child.
var RelayedSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP, unix.SIGQUIT}

// Runner starts a child process attached to the given streams and
// waits for it.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is the child's environment. Nil inherits the supervisor's.
	Env []string

	Logger *slog.Logger
}

// Run executes path with args and blocks until the child ends. It
// never returns an error: start failures are reported as
// [SpawnFailed]. While the child runs, [RelayedSignals] delivered to
// the supervisor are forwarded to it instead of terminating the
// supervisor.
func (r *Runner) Run(path string, args []string) ExitStatus {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cmd := exec.Command(path, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = r.Env

	signals := make(chan os.Signal, len(RelayedSignals))
	signal.Notify(signals, RelayedSignals...)
	defer signal.Stop(signals)

	if err := cmd.Start(); err != nil {
		return SpawnFailed(err.Error())
	}
	logger.Debug("tool started", "path", path, "pid", cmd.Process.Pid, "args", args)

	done := make(chan struct{})
	relayed := make(chan struct{})
	go func() {
		defer close(relayed)
		for {
			select {
			case received := <-signals:
				logger.Info("relaying signal to tool", "signal", received.String())
				if err := cmd.Process.Signal(received); err != nil {
					logger.Warn("failed to relay signal", "signal", received.String(), "error", err)
				}
			case <-done:
				return
			}
		}
	}()

	status := statusFromWait(cmd.Wait())
	close(done)
	<-relayed
	return status
}
