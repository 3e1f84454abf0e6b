// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for rdv binaries.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// These default to "unknown" / "0.1.0-dev" when not injected, which
// occurs during development builds and test runs.
//
// [SelfDigest] returns the SHA-256 of the running binary. The
// entrypoint logs it at startup so an attestation's log trail names
// the exact supervisor build that produced it.
package version
