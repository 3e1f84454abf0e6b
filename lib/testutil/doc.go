// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for rdv packages.
//
// [WriteTree] materializes a map of slash-separated relative paths to
// file contents under a directory, creating parent directories as
// needed. Tests that hash trees or collect products use it to build
// fixtures in one call.
//
// [WriteScript] writes an executable /bin/sh script, used as a stand-in
// tool binary by process and supervisor tests.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation, such as invocation ids.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no rdv-internal dependencies.
package testutil
