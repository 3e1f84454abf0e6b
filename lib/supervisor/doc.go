// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package supervisor runs one tool invocation from start to finish.
//
// The flow is strictly sequential:
//
//  1. Load the supervisor config and tool manifest, build the logger.
//  2. Validate the runtime contract. Any violation ends the run with
//     exit code 2 before the tool is started.
//  3. Fingerprint the workspace. Failure is a contract violation.
//  4. Discover the tool binary and run it with the supervisor's
//     arguments and standard streams, relaying termination signals.
//  5. Collect products from the output directory, whatever the tool's
//     exit status.
//  6. Build and atomically write the attestation. Failure is a
//     contract violation even if the tool succeeded.
//  7. Exit with the tool's own exit code.
//
// Exit code 2 is reserved for contract violations, but a tool that
// itself exits 2 is reported unchanged; the log distinguishes the two.
package supervisor
