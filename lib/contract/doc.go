// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package contract checks the runtime contract between the host and a
// tool container before the tool is started.
//
// The contract holds when all four required bindings are present, the
// trust level is a recognised one, the workspace and output paths are
// existing directories, and the output directory accepts writes. The
// validator runs every check and reports every failure in one
// [ViolationError], so a misconfigured host sees the full list at once.
//
// [ViolationError] is also the error type the supervisor uses for
// failures after validation that must end a run with the contract
// violation exit code, such as an unhashable workspace or an
// attestation that could not be written.
package contract
