// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Rdv-entrypoint is the entrypoint of rdv tool container images. It
// validates the mount and environment contract, fingerprints the
// workspace, runs the packaged tool with its own arguments unchanged,
// and writes an attestation of the run into the output mount before
// exiting with the tool's exit code.
//
// It takes no flags of its own: every argument belongs to the tool.
// Supervisor behavior is configured through RDV_CONFIG, RDV_LOG_LEVEL,
// and RDV_DEBUG.
package main
