// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package process finds, starts, and waits for the tool binary, and
// provides the entrypoint helpers rdv binaries share.
//
// [Discover] picks the tool binary from an ordered candidate list.
// [EnsureExecutable] repairs missing execute bits, which image builds
// occasionally drop. [Runner] starts the tool with the supervisor's
// standard streams, forwards termination signals to it while it runs,
// and reports how it ended as an [ExitStatus]. The exit status maps
// to a single process exit code with shell conventions: the child's
// own code when it exited, 128 plus the signal number when a signal
// killed it, and 126 when it could not be started at all.
//
// [Fatal] is the error handler for main() in the rdv command-line
// tool, for errors reported before or outside structured logging.
package process
