// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// ExitKind classifies how a child process ended.
type ExitKind int

const (
	// KindExited means the child returned an exit code.
	KindExited ExitKind = iota

	// KindSignaled means a signal terminated the child.
	KindSignaled

	// KindSpawnFailed means the child never started.
	KindSpawnFailed
)

func (kind ExitKind) String() string {
	switch kind {
	case KindExited:
		return "exited"
	case KindSignaled:
		return "signaled"
	case KindSpawnFailed:
		return "spawn_failed"
	}
	return fmt.Sprintf("ExitKind(%d)", int(kind))
}

// SpawnFailedCode is reported when the tool could not be started.
const SpawnFailedCode = 126

// signalCodeBase is added to the signal number for signal deaths.
const signalCodeBase = 128

// ExitStatus is how a child process ended. Only the field matching
// Kind is meaningful.
type ExitStatus struct {
	Kind   ExitKind
	Code   int
	Signal syscall.Signal
	Reason string
}

// Exited is a normal exit with code.
func Exited(code int) ExitStatus {
	return ExitStatus{Kind: KindExited, Code: code}
}

// Signaled is termination by signal.
func Signaled(signal syscall.Signal) ExitStatus {
	return ExitStatus{Kind: KindSignaled, Signal: signal}
}

// SpawnFailed is a failure to start the child; reason is logged.
func SpawnFailed(reason string) ExitStatus {
	return ExitStatus{Kind: KindSpawnFailed, Reason: reason}
}

// ExitCode maps the status to the supervisor's process exit code.
func (status ExitStatus) ExitCode() int {
	switch status.Kind {
	case KindSignaled:
		return signalCodeBase + int(status.Signal)
	case KindSpawnFailed:
		return SpawnFailedCode
	}
	return status.Code
}

func (status ExitStatus) String() string {
	switch status.Kind {
	case KindSignaled:
		return fmt.Sprintf("terminated by %s", unix.SignalName(status.Signal))
	case KindSpawnFailed:
		return "failed to start: " + status.Reason
	}
	return fmt.Sprintf("exited with code %d", status.Code)
}

// statusFromWait converts the error from exec.Cmd.Wait into an
// ExitStatus.
func statusFromWait(err error) ExitStatus {
	if err == nil {
		return Exited(0)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return SpawnFailed(err.Error())
	}
	waitStatus, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return Exited(exitErr.ExitCode())
	}
	return statusFromWaitStatus(waitStatus)
}

func statusFromWaitStatus(waitStatus syscall.WaitStatus) ExitStatus {
	switch {
	case waitStatus.Signaled():
		return Signaled(waitStatus.Signal())
	case waitStatus.Exited():
		return Exited(waitStatus.ExitStatus())
	}
	return SpawnFailed(fmt.Sprintf("unexpected wait status %v", waitStatus))
}
